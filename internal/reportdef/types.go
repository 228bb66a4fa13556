package reportdef

// Report is a parsed report definition file.
type Report struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   Metadata `yaml:"metadata"`
	Spec       Spec     `yaml:"spec"`
}

// Metadata identifies a report definition.
type Metadata struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title,omitempty"`
	Owner       string `yaml:"owner,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Spec declares what to build and how often.
type Spec struct {
	// View names the report view to build: customers, products,
	// monthly_trend, yearly_performance or category_share.
	View string `yaml:"view"`

	// RefreshInterval is how often the view is recomputed ("30s", "5m",
	// "1h", "1d").
	RefreshInterval string `yaml:"refreshInterval"`

	// ReferenceDate pins the "current date" used for recency and age
	// ("2006-01-02"). Empty means the wall clock at build time.
	ReferenceDate string `yaml:"referenceDate,omitempty"`
}

// ReportWithFile pairs a report definition with its source file path.
type ReportWithFile struct {
	Report *Report
	File   string
}

// ValidationError represents a validation error for a specific file.
type ValidationError struct {
	File    string
	Path    string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return e.File + ": " + e.Path + ": " + e.Message
	}
	return e.File + ": " + e.Message
}
