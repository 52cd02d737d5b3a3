package version

// AppName is shown in startup logs and the CLI.
const AppName = "swolebro"

// Version is overridden at build time with -ldflags "-X ...version.Version=...".
var Version = "dev"
