package checkout

import (
	"readira/session"
	"readira/utils"
)

// EnsureToken returns the session's live order token, minting one on first
// use. Repeated calls never rotate the token: it has to survive the GET
// render of the payment form and come back unchanged on the POST, so
// rotating between the two would falsely invalidate honest submissions.
func EnsureToken(s *session.Session) string {
	if s.OrderToken != "" {
		return s.OrderToken
	}
	s.OrderToken = utils.HashIt(utils.GenerateNonce() + s.UserID)
	s.MarkDirty()
	return s.OrderToken
}
