package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	BatchFile   string
	CSVColumn   string
	DeckName    string
	Format      string
	OutputDir   string
	SkipAudio   bool
	SkipGrammar bool
	Archive     bool
	ListModels  bool
	Verbose     bool

	// Language flags
	SourceLang string
	TargetLang string

	// Provider flags
	Translator  string
	Grammar     string
	MaxInFlight int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		CSVColumn: "sentence",
		DeckName:  "Language Practice",
		Format:    "apkg",
	}
}
