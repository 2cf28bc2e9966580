package twilio

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"restaurant-voice-agent/internal/conversation"
)

// HandleIncomingCall answers a new inbound call: it creates the session and
// speaks the greeting inside a Gather.
func (h *Handler) HandleIncomingCall(c *gin.Context) {
	ctx := c.Request.Context()

	callSID, ok := h.authorize(c)
	if !ok {
		return
	}

	out, err := h.uc.StartCall(ctx, callSID)
	if err != nil {
		h.l.Errorf(ctx, "HandleIncomingCall: call=%s start failed: %v", callSID, err)
		h.speakAndHangUp(c, "I'm sorry, we're unable to take your call right now. Please try again later.")
		return
	}

	h.gatherReply(c, callSID, out.Greeting)
}

// HandleGather receives the transcribed caller speech and runs one
// orchestration turn.
func (h *Handler) HandleGather(c *gin.Context) {
	ctx := c.Request.Context()

	callSID, ok := h.authorize(c)
	if !ok {
		return
	}

	speech := c.PostForm(paramSpeechResult)

	out, err := h.uc.ProcessTurn(ctx, conversation.ProcessTurnInput{CallSID: callSID, Utterance: speech})
	if errors.Is(err, conversation.ErrSessionNotFound) {
		// Session lost (service restart); recreate it and retry the turn.
		h.l.Warnf(ctx, "HandleGather: call=%s session missing, recreating", callSID)
		if _, startErr := h.uc.StartCall(ctx, callSID); startErr == nil {
			out, err = h.uc.ProcessTurn(ctx, conversation.ProcessTurnInput{CallSID: callSID, Utterance: speech})
		}
	}
	if err != nil {
		h.l.Errorf(ctx, "HandleGather: call=%s turn failed: %v", callSID, err)
		h.speakAndHangUp(c, "I'm sorry, something went wrong. Please call back.")
		return
	}

	if out.HangUp {
		h.speakAndHangUp(c, out.Reply)
		return
	}
	h.gatherReply(c, callSID, out.Reply)
}

// HandleCallStatus receives call lifecycle updates and tears the session down
// on terminal statuses.
func (h *Handler) HandleCallStatus(c *gin.Context) {
	ctx := c.Request.Context()

	callSID, ok := h.authorize(c)
	if !ok {
		return
	}

	callStatus := c.PostForm(paramCallStatus)
	if isTerminalCallStatus(callStatus) {
		if err := h.uc.EndCall(ctx, callSID, callStatus); err != nil {
			h.l.Errorf(ctx, "HandleCallStatus: call=%s end failed: %v", callSID, err)
		}
	}

	c.String(http.StatusOK, "OK")
}

// authorize validates the request signature and rate limit and extracts the
// call SID. On failure it writes the response and returns ok=false.
func (h *Handler) authorize(c *gin.Context) (callSID string, ok bool) {
	ctx := c.Request.Context()

	if err := c.Request.ParseForm(); err != nil {
		h.l.Errorf(ctx, "twilio webhook: failed to parse form: %v", err)
		c.String(http.StatusBadRequest, "bad request")
		return "", false
	}

	signature := c.GetHeader("X-Twilio-Signature")
	if err := h.security.ValidateSignature(fullRequestURL(c.Request), c.Request.PostForm, signature); err != nil {
		h.l.Errorf(ctx, "twilio webhook: signature verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return "", false
	}

	callSID = c.PostForm(paramCallSID)
	if callSID == "" {
		callSID = c.Query(paramCallSID)
	}
	if callSID == "" {
		c.String(http.StatusBadRequest, "missing CallSid")
		return "", false
	}

	if err := h.security.CheckRateLimit(callSID); err != nil {
		h.l.Warnf(ctx, "twilio webhook: rate limit exceeded: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return "", false
	}
	return callSID, true
}

func (h *Handler) gatherReply(c *gin.Context, callSID, text string) {
	action := fmt.Sprintf("%s?%s=%s", GatherPath, paramCallSID, url.QueryEscape(callSID))
	twiml, err := GatherTwiML(text, action)
	if err != nil {
		h.l.Errorf(c.Request.Context(), "twilio webhook: twiml render failed: %v", err)
		c.String(http.StatusInternalServerError, "twiml render failed")
		return
	}
	c.Data(http.StatusOK, "application/xml", twiml)
}

func (h *Handler) speakAndHangUp(c *gin.Context, text string) {
	twiml, err := HangupTwiML(text)
	if err != nil {
		h.l.Errorf(c.Request.Context(), "twilio webhook: twiml render failed: %v", err)
		c.String(http.StatusInternalServerError, "twiml render failed")
		return
	}
	c.Data(http.StatusOK, "application/xml", twiml)
}
