package conversation

import (
	"fmt"
	"regexp"

	"pastalink-bot/internal/model"
)

// Shortcuts answered without calling the classifier.
var (
	HelpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bhelp\b`),
		regexp.MustCompile(`(?i)\baiuto\b`),
		regexp.MustCompile(`(?i)\bcosa\s+sai\s+fare\b`),
		regexp.MustCompile(`(?i)\bwhat\s+can\s+you\s+do\b`),
		regexp.MustCompile(`(?i)\bcomandi\b`),
		regexp.MustCompile(`(?i)\bfunzioni\b`),
	}

	AboutPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bchi\s+sei\b`),
		regexp.MustCompile(`(?i)\bwho\s+are\s+you\b`),
		regexp.MustCompile(`(?i)\bcosa\s+sei\b`),
		regexp.MustCompile(`(?i)\bwhat\s+are\s+you\b`),
	}
)

const (
	BotName        = "PAstaLinkBot"
	BotAuthor      = "PastaBits"
	BotDescription = "I give you the official links to Italian public services without wasting time."
)

var GreetingTexts = []string{
	"Hi there! 👋 Ready to serve your links al dente 🍝",
	"Hey! I'm here to untangle your public service spaghetti 😉",
	"Hello! Tell me what you need and I'll link it in one click.",
	"Ciao! What public service can I help you with today? 🇮🇹",
}

var SmalltalkTexts = []string{
	"All good here! Stirring some links in the pot 😄",
	"Thanks! Ask me about car tax, health records, driving license, CUP…",
	"Always online: pixels, pasta, and public administration!",
	"Everything's running smoothly! How can I help with Italian services?",
}

const HelpText = `Here's what I can do:

**Health Services:**
• Health records / prescriptions / reports (per region)
• CUP medical appointments booking (per region)

**Vehicle Services:**
• Car tax calculation and payment
• Driving license renewal

**Digital Identity:**
• SPID (Digital Identity System)
• CIE (Electronic ID Card)

**Government Services:**
• ANPR registry certificates
• IO App / PagoPA services
• School enrollment services
• INPS social security services
• Agenzia delle Entrate (tax services)
• Waste tax (TARI) information

**Examples:**
• *"Where do I see the doctor's prescriptions in Lombardia?"*
• *"Book a medical visit in Tuscany"*
• *"How do I calculate car tax?"*
• *"How to get SPID?"*
• *"Download IO app"*`

var AboutText = fmt.Sprintf("I'm **%s** by %s 🍝\n%s\nNo personal data: just quick links and clear instructions.", BotName, BotAuthor, BotDescription)

const OffTopicText = "I deal with **Italian public services**: health record/recipes, car tax, driving license, " +
	"ANPR/certificates, IO/PagoPA, CUP, school, waste tax.\n" +
	`Try: *"Where do I pay the car tax in Lombardia"* or *"Where do I see the doctor's prescriptions?"*`

// Examples shown when asking for a region.
const (
	AskRegionExamples = 3
	RepromptExamples  = 5
)

// Log prefixes
const (
	LogPrefixFreeText    = "internal.conversation.HandleFreeText"
	LogPrefixRegionReply = "internal.conversation.HandleRegionReply"
	LogPrefixRecover     = "internal.conversation.recover"
)

// ValidationMessage returns the user-facing text for a failed message check.
func ValidationMessage(kind model.ErrorKind, minLength, maxLength int) string {
	switch kind {
	case model.ErrorKindEmpty:
		return "Please send me a message."
	case model.ErrorKindTooShort:
		return fmt.Sprintf("Message too short (minimum %d characters)", minLength)
	case model.ErrorKindTooLong:
		return fmt.Sprintf("Message too long. Please keep it under %d characters.", maxLength)
	case model.ErrorKindSpamRepetitive, model.ErrorKindExcessivePunctuation:
		return "Please send a meaningful message."
	case model.ErrorKindUnknownRegion:
		return "I didn't recognize that region. Please try again."
	}
	return "Sorry, something went wrong. Please try again."
}
