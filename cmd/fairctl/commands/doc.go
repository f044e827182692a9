// Package commands defines the fairctl CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - booths          Print the booth layout for an exhibitor CSV
//   - schedule        Print presentation slots for an exhibitor CSV
//   - export-html     Write a Leaflet map of booths with coordinates
//   - email           Send a templated invitation to every Email
//   - sms             Text every Kenyan Phone/WhatsApp number via Twilio
//   - whatsapp        Print (and optionally open) wa.me click-to-chat links
//   - sheets-sync     Copy a CSV into a new Google spreadsheet
//   - ussd-info       Print dial instructions for a phone number
//   - registrations   List, summarise or export USSD registrations
//   - secrets         Manage the sealed credential keystore
//
// # Implementation
//
// The root command loads fair.toml, builds the zap logger and opens the
// keystore before any subcommand runs. Command output goes to the command's
// stdout; diagnostics go to the logger on stderr.
package commands
