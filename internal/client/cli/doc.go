// Package cli provides the BunFight command-line client.
//
// Commands:
//
//	bunfight locate --lat X --lon Y [--term T]
//	bunfight lookup <locality>
//	bunfight submit <locality> <term>
//	bunfight list
//
// locate resolves the coordinates to a locality, asks the server for the
// local word for bread and, when the server does not know it and --term is
// given, teaches it. Global flags and BUNFIGHT_* variables are described in
// the config package.
package cli
