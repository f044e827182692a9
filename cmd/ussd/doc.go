// Package main runs the USSD registration webhook server.
//
// It answers Africa's Talking and generic gateway callbacks, keeps per-session
// menu state in memory and stores confirmed registrations in the database
// named by DATABASE_URL (default sqlite:./registrations.db). See package
// internal/server for the HTTP API.
//
// Sessions idle for longer than ussd.session_timeout are dropped by a janitor
// goroutine. SIGINT or SIGTERM stops accepting requests and drains in-flight
// ones for up to server.shutdown_timeout.
//
// The default listen address is :8080, overridden by PORT.
package main
