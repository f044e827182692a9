// Package server exposes the USSD registration service over HTTP.
//
// HTTP API
//
//	POST /ussd/africastalking
//	    Form fields sessionId, phoneNumber, text. Answers the screen as
//	    text/plain, prefixed "CON " or "END ".
//
//	POST /ussd/generic
//	    JSON {"session_id", "phone_number", "text"}. Answers
//	    {"response": "...", "continue_session": bool}.
//
//	GET /registrations/stats
//	    Totals, per-type counts, per-school counts and hourly histogram.
//
//	GET /registrations/export?format=json|csv
//	    All registrations, newest first.
//
//	GET /healthz
//	    Liveness probe.
//
// Behaviour
//
//   - Webhook failures never surface as HTTP errors; the gateway is sent an
//     END screen asking the caller to try again later.
//   - Every request carries an X-Request-ID (generated when absent) and is
//     recorded in the access log with method, path, status, bytes and duration.
package server
