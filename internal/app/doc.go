// Package app wires application dependencies for fairctl and the USSD server.
//
// It loads configuration, builds the logger, opens the credential keystore
// and constructs the senders, stores and services commands use.
package app
