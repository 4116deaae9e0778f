package describe

// Data contains everything the describe view displays
type Data struct {
	// Header
	DefinitionsPath string
	Version         string
	LogLevel        string

	Commands   []CommandInfo
	Handlers   []string
	Templates  []string
	ValueLists map[string]int    // list name -> number of values
	Exec       map[string]string // command name -> command line
}

// CommandInfo describes one defined command
type CommandInfo struct {
	Name        string
	Description string
	Parameters  []ParameterInfo
}

// ParameterInfo describes one declared parameter
type ParameterInfo struct {
	Name       string
	Type       string
	Optional   bool
	Default    string
	Completion string
	Known      bool // Whether the completion handler is registered
}
