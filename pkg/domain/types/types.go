package types

// Version is the application version, overwritten at build time via ldflags
var Version = "dev"

// UnreleasedName is the release key used when the upper bound of the commit
// range is the working head rather than a tag.
const UnreleasedName = "Unreleased"
