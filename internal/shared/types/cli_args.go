package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	From       string
	To         string
	Products   []string
	Notes      string
	NotesFile  string
	ReportType []string
	Dir        string
	S3Bucket   string
	S3Prefix   string
	AWSProfile string
	Addr       string
}
