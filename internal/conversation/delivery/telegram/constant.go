package telegram

const (
	DefaultRegionsPerMessage = 15
	DefaultQueueBufferSize   = 16

	// SafeMessageLength keeps replies under Telegram's 4096 character cap.
	SafeMessageLength = 4000
)

// Commands
const (
	CommandStart   = "/start"
	CommandHelp    = "/help"
	CommandAbout   = "/about"
	CommandRegions = "/regions"
	CommandCancel  = "/cancel"
	CommandStats   = "/stats"
	CommandReload  = "/reload"
)

// Error texts
const (
	TextGeneric     = "Sorry, something went wrong. Please try again."
	TextNoLinks     = "I couldn't find any links for your request."
	TextAdminOnly   = "Sorry, this command is only available for administrators."
	TextRateLimited = "You're sending messages too fast. Please wait a moment and try again."
	TextBusy        = "I'm still working on your previous messages. Please wait a moment."
)

// Reply templates
const (
	TextLinksHeader      = "Useful links (%s)"
	TextRegionExamples   = "For which region? (e.g. %s)"
	TextRegionQuestion   = "For which region?"
	TextSuggestions      = "I didn't recognize '%s'. Did you mean: %s?"
	TextNoSuggestions    = "I didn't recognize '%s'. Please try again."
	TextSuggestionsLabel = "Suggestions"
	TextCancelled        = "Okay, request cancelled. Ask me anything about Italian public services."
	TextNothingToCancel  = "There is nothing to cancel."
	TextReloadOK         = "✅ Catalog reloaded: %d entries, %d regions."
	TextReloadFailed     = "❌ Catalog reload failed, the previous data is still in use."
	TextNoRegions        = "No regions are currently available."
	TextNoRegionMatch    = "No region matches '%s'."
	TextRegionsAll       = "**Available regions:**\n%s"
	TextRegionsPartial   = "**Available regions** (%d total):\n%s\n\n_Use /regions <name> to search_"
)

const TextStats = `📊 **Bot Statistics**

**Catalog Index:**
• Total entries: %d
• Intents indexed: %d
• Regions available: %d

**Links Cache:**
• Hits: %d
• Misses: %d
• Current size: %d
• Max size: %d

**LLM Classification Cache:**
• Hits: %d
• Misses: %d
• Current size: %d
• Max size: %d

**Input Validator:**
• Total regions: %d
• Region aliases: %d

**Sessions:**
• Active: %d
• Awaiting region: %d`

// Log prefixes
const (
	LogPrefixWebhook = "internal.conversation.delivery.telegram.HandleWebhook"
	LogPrefixProcess = "internal.conversation.delivery.telegram.process"
	LogPrefixSend    = "internal.conversation.delivery.telegram.send"
)
