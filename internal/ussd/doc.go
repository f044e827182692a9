// Package ussd runs the attendee registration menu served over a USSD
// short code.
//
// Gateways post the caller's cumulative input as "*"-joined text on every
// hop. Service keeps one Session per gateway session id and feeds it only the
// inputs it has not seen yet, so a retried or replayed request does not
// advance the menu twice. Every response starts with "CON " when the gateway
// should keep the session open or "END " when it should hang up. An END
// response discards the session but its screen is kept for the session
// timeout, so a retried final hop gets the same answer without storing the
// registration again.
//
// Menu flow
//
//	Menu ── 1/2 ──> Name ──> School ── 1..9 ──> Confirm ── 1 ──> stored, END
//	  │                         └── 0 ──> CustomSchool ──┘   ├── 2 ──> Menu
//	  └── 3, 4, 0: information or exit, END                 └── 0 ──> END
//
// Invalid input re-shows the current prompt with an attempt counter until the
// configured maximum is reached.
package ussd
