package twilio

import (
	"encoding/xml"
)

// DefaultVoice is the Twilio TTS voice used for all spoken replies.
const DefaultVoice = "alice"

// retryText is spoken when Gather times out without any speech.
const retryText = "I didn't catch that. Please try again."

// Say speaks text to the caller.
type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr"`
	Text    string   `xml:",chardata"`
}

// Gather collects caller speech and posts it to Action.
type Gather struct {
	XMLName       xml.Name `xml:"Gather"`
	Action        string   `xml:"action,attr"`
	Method        string   `xml:"method,attr"`
	Input         string   `xml:"input,attr"`
	SpeechTimeout string   `xml:"speechTimeout,attr"`
	Language      string   `xml:"language,attr"`
	Say           Say
}

// Redirect re-enters the given webhook when Gather produced nothing.
type Redirect struct {
	XMLName xml.Name `xml:"Redirect"`
	URL     string   `xml:",chardata"`
}

// Hangup ends the call.
type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// voiceResponse is the TwiML <Response> document. Field order is the
// rendered element order.
type voiceResponse struct {
	XMLName  xml.Name  `xml:"Response"`
	Gather   *Gather   `xml:",omitempty"`
	Say      *Say      `xml:",omitempty"`
	Redirect *Redirect `xml:",omitempty"`
	Hangup   *Hangup   `xml:",omitempty"`
}

func renderTwiML(resp voiceResponse) ([]byte, error) {
	body, err := xml.MarshalIndent(resp, "", "    ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// GatherTwiML speaks text and gathers the caller's spoken reply, posting it
// to actionURL. A no-input timeout re-prompts and redirects to actionURL.
func GatherTwiML(text, actionURL string) ([]byte, error) {
	return renderTwiML(voiceResponse{
		Gather: &Gather{
			Action:        actionURL,
			Method:        "POST",
			Input:         "speech",
			SpeechTimeout: "auto",
			Language:      "en-US",
			Say:           Say{Voice: DefaultVoice, Text: text},
		},
		Say:      &Say{Voice: DefaultVoice, Text: retryText},
		Redirect: &Redirect{URL: actionURL},
	})
}

// HangupTwiML speaks text and ends the call.
func HangupTwiML(text string) ([]byte, error) {
	return renderTwiML(voiceResponse{
		Say:    &Say{Voice: DefaultVoice, Text: text},
		Hangup: &Hangup{},
	})
}
