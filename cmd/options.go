package cmd

type s3Opts struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
	Prefix string `mapstructure:"prefix"`
}

// outputOpts are shared by the commands producing a report.
type outputOpts struct {
	Output       string `mapstructure:"output"`
	OutputFormat string `mapstructure:"output_format"`
	Upload       bool   `mapstructure:"upload"`
	S3           s3Opts `mapstructure:"s3"`
}

// reportOpts decorate the root of a produced report.
type reportOpts struct {
	ReportID   string   `mapstructure:"report_id"`
	ReportName string   `mapstructure:"report_name"`
	Property   []string `mapstructure:"property"`
}

type parseOpts struct {
	Out outputOpts `mapstructure:",squash"`

	Format string `mapstructure:"format"`
}

type convertOpts struct {
	Out    outputOpts `mapstructure:",squash"`
	Report reportOpts `mapstructure:",squash"`

	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

type mergeOpts struct {
	Out    outputOpts `mapstructure:",squash"`
	Report reportOpts `mapstructure:",squash"`

	Format          string   `mapstructure:"format"`
	Exclude         []string `mapstructure:"exclude"`
	MergeSameSuites bool     `mapstructure:"merge_same_suites"`
}

type summaryOpts struct {
	Format string `mapstructure:"format"`
	Strict bool   `mapstructure:"strict"`
}
