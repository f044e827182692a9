// Package outreach sends bulk invitations to a contact list over email, SMS
// and WhatsApp click-to-chat links.
//
// Each bulk run walks the rows in order and reports how many were sent,
// failed or skipped. A failure on one row is printed and logged, and the run
// continues with the next row. Runs stop early only when the context is
// cancelled.
package outreach
