package common

// UnknownTermMessage is shown to users when no term is stored for their locality.
const UnknownTermMessage = "Sorry we don't know"

// AwaitingLocationMessage is shown when coordinates could not be resolved.
const AwaitingLocationMessage = "awaiting location"

// EnvPrefix prefixes every environment variable read by the binaries.
const EnvPrefix = "BUNFIGHT"
