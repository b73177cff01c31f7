package model

// ProjectInput is the whole form: six sections of text and text-list fields.
// Absent values are the empty string or an empty list, never nil in output.
type ProjectInput struct {
	DocMeta        DocMeta        `json:"doc_meta" yaml:"doc_meta"`
	Context        Context        `json:"context" yaml:"context"`
	Tech           Tech           `json:"tech" yaml:"tech"`
	ClaudeRules    ClaudeRules    `json:"claude_rules" yaml:"claude_rules"`
	Policies       Policies       `json:"policies" yaml:"policies"`
	TemplateStyles TemplateStyles `json:"template_styles" yaml:"template_styles"`
}

type DocMeta struct {
	Idea     string `json:"idea" yaml:"idea" jsonschema:"description=Free-text project idea used by the recommender"`
	DocTitle string `json:"doc_title" yaml:"doc_title"`
	Scope    string `json:"scope" yaml:"scope"`
	Audience string `json:"audience" yaml:"audience"`
	WorkMode string `json:"work_mode" yaml:"work_mode"`
}

type Context struct {
	ProductOneLiner string   `json:"product_one_liner" yaml:"product_one_liner"`
	CoreScenarios   TextList `json:"core_scenarios" yaml:"core_scenarios"`
	QualityBars     string   `json:"quality_bars" yaml:"quality_bars"`
	TopRisks        TextList `json:"top_risks" yaml:"top_risks"`
}

type Tech struct {
	TechStack   StackText `json:"tech_stack" yaml:"tech_stack"`
	GitStrategy string    `json:"git_strategy" yaml:"git_strategy"`
	Deployment  string    `json:"deployment" yaml:"deployment"`
	Envs        TextList  `json:"envs" yaml:"envs"`
	CICDTools   string    `json:"cicd_tools" yaml:"cicd_tools"`
}

type ClaudeRules struct {
	DoDont              DoDontText `json:"do_dont" yaml:"do_dont"`
	TaskSlicingRule     string     `json:"task_slicing_rule" yaml:"task_slicing_rule"`
	QualityGates        string     `json:"quality_gates" yaml:"quality_gates"`
	ExperimentVsProduct string     `json:"experiment_vs_product" yaml:"experiment_vs_product"`
	ObservabilityRules  string     `json:"observability_rules" yaml:"observability_rules"`
}

type Policies struct {
	DecisionPolicy string `json:"decision_policy" yaml:"decision_policy"`
	ReviewPolicy   string `json:"review_policy" yaml:"review_policy"`
	SecurityPolicy string `json:"security_policy" yaml:"security_policy"`
}

type TemplateStyles struct {
	IssueTemplateStyle   string `json:"issue_template_style" yaml:"issue_template_style"`
	ADRTemplateStyle     string `json:"adr_template_style" yaml:"adr_template_style"`
	PRTemplateStyle      string `json:"pr_template_style" yaml:"pr_template_style"`
	TestPlanStyle        string `json:"test_plan_style" yaml:"test_plan_style"`
	ReleaseTemplateStyle string `json:"release_template_style" yaml:"release_template_style"`
}

// Level is the severity of a ValidationMessage.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
)

type ValidationMessage struct {
	Level   Level  `json:"level" yaml:"level"`
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// GenerateResult is derived fresh from a ProjectInput on every call.
type GenerateResult struct {
	PromptText     string              `json:"promptText" yaml:"prompt_text"`
	DecisionNeeded []string            `json:"decisionNeeded" yaml:"decision_needed"`
	Errors         []ValidationMessage `json:"errors" yaml:"errors"`
	Warnings       []ValidationMessage `json:"warnings" yaml:"warnings"`
}

// TechItem is one entry of the recommender catalog. Description is a keyword
// bag used only for embedding and is never shown to users.
type TechItem struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}
