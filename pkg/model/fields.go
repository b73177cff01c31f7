package model

import "strings"

// Kind says whether a field holds a single text or a list of texts.
type Kind int

const (
	KindText Kind = iota
	KindList
)

func (k Kind) String() string {
	if k == KindList {
		return "list"
	}
	return "text"
}

// Value is a field value read out of a ProjectInput.
type Value struct {
	Kind Kind
	Text string
	List TextList
}

// IsEmpty reports a blank text (after trim) or an empty list.
func (v Value) IsEmpty() bool {
	if v.Kind == KindList {
		return len(v.List) == 0
	}
	return strings.TrimSpace(v.Text) == ""
}

// Field describes one leaf of ProjectInput: its dotted path, the placeholder
// it fills in the master template and how it is read.
type Field struct {
	Path        string
	Placeholder string
	Label       string
	Kind        Kind
	// Inline fields sit in a Markdown table cell and must render on one line.
	Inline bool

	get func(*ProjectInput) Value
}

// Value reads the field from in.
func (f Field) Value(in *ProjectInput) Value {
	return f.get(in)
}

func text(fn func(*ProjectInput) string) func(*ProjectInput) Value {
	return func(in *ProjectInput) Value { return Value{Kind: KindText, Text: fn(in)} }
}

func list(fn func(*ProjectInput) TextList) func(*ProjectInput) Value {
	return func(in *ProjectInput) Value { return Value{Kind: KindList, List: fn(in)} }
}

// Fields is every leaf of ProjectInput in document order. Each path maps to
// exactly one placeholder.
var Fields = []Field{
	{Path: "doc_meta.idea", Placeholder: "IDEA", Label: "프로젝트 아이디어", get: text(func(in *ProjectInput) string { return in.DocMeta.Idea })},
	{Path: "doc_meta.doc_title", Placeholder: "DOC_TITLE", Label: "문서 제목", Inline: true, get: text(func(in *ProjectInput) string { return in.DocMeta.DocTitle })},
	{Path: "doc_meta.scope", Placeholder: "SCOPE", Label: "범위", Inline: true, get: text(func(in *ProjectInput) string { return in.DocMeta.Scope })},
	{Path: "doc_meta.audience", Placeholder: "AUDIENCE", Label: "대상 독자", Inline: true, get: text(func(in *ProjectInput) string { return in.DocMeta.Audience })},
	{Path: "doc_meta.work_mode", Placeholder: "WORK_MODE", Label: "작업 방식", Inline: true, get: text(func(in *ProjectInput) string { return in.DocMeta.WorkMode })},

	{Path: "context.product_one_liner", Placeholder: "PRODUCT_ONE_LINER", Label: "제품 한줄 설명", get: text(func(in *ProjectInput) string { return in.Context.ProductOneLiner })},
	{Path: "context.core_scenarios", Placeholder: "CORE_SCENARIOS", Label: "핵심 시나리오", Kind: KindList, get: list(func(in *ProjectInput) TextList { return in.Context.CoreScenarios })},
	{Path: "context.quality_bars", Placeholder: "QUALITY_BARS", Label: "품질 기준", get: text(func(in *ProjectInput) string { return in.Context.QualityBars })},
	{Path: "context.top_risks", Placeholder: "TOP_RISKS", Label: "주요 리스크", Kind: KindList, get: list(func(in *ProjectInput) TextList { return in.Context.TopRisks })},

	{Path: "tech.tech_stack", Placeholder: "TECH_STACK", Label: "기술 스택", Inline: true, get: text(func(in *ProjectInput) string { return string(in.Tech.TechStack) })},
	{Path: "tech.git_strategy", Placeholder: "GIT_STRATEGY", Label: "Git 전략", Inline: true, get: text(func(in *ProjectInput) string { return in.Tech.GitStrategy })},
	{Path: "tech.deployment", Placeholder: "DEPLOYMENT", Label: "배포 방식", Inline: true, get: text(func(in *ProjectInput) string { return in.Tech.Deployment })},
	{Path: "tech.envs", Placeholder: "ENVS", Label: "환경 구성", Kind: KindList, Inline: true, get: list(func(in *ProjectInput) TextList { return in.Tech.Envs })},
	{Path: "tech.cicd_tools", Placeholder: "CICD_TOOLS", Label: "CI/CD 도구", Inline: true, get: text(func(in *ProjectInput) string { return in.Tech.CICDTools })},

	{Path: "claude_rules.do_dont", Placeholder: "DO_DONT", Label: "Do / Don't", get: text(func(in *ProjectInput) string { return string(in.ClaudeRules.DoDont) })},
	{Path: "claude_rules.task_slicing_rule", Placeholder: "TASK_SLICING_RULE", Label: "태스크 분할 규칙", get: text(func(in *ProjectInput) string { return in.ClaudeRules.TaskSlicingRule })},
	{Path: "claude_rules.quality_gates", Placeholder: "QUALITY_GATES", Label: "품질 게이트", get: text(func(in *ProjectInput) string { return in.ClaudeRules.QualityGates })},
	{Path: "claude_rules.experiment_vs_product", Placeholder: "EXPERIMENT_VS_PRODUCT", Label: "실험 vs 프로덕션 구분", get: text(func(in *ProjectInput) string { return in.ClaudeRules.ExperimentVsProduct })},
	{Path: "claude_rules.observability_rules", Placeholder: "OBSERVABILITY_RULES", Label: "관측성 규칙", get: text(func(in *ProjectInput) string { return in.ClaudeRules.ObservabilityRules })},

	{Path: "policies.decision_policy", Placeholder: "DECISION_POLICY", Label: "의사결정 정책", get: text(func(in *ProjectInput) string { return in.Policies.DecisionPolicy })},
	{Path: "policies.review_policy", Placeholder: "REVIEW_POLICY", Label: "리뷰 정책", get: text(func(in *ProjectInput) string { return in.Policies.ReviewPolicy })},
	{Path: "policies.security_policy", Placeholder: "SECURITY_POLICY", Label: "보안 정책", get: text(func(in *ProjectInput) string { return in.Policies.SecurityPolicy })},

	{Path: "template_styles.issue_template_style", Placeholder: "ISSUE_TEMPLATE_STYLE", Label: "이슈 템플릿", Inline: true, get: text(func(in *ProjectInput) string { return in.TemplateStyles.IssueTemplateStyle })},
	{Path: "template_styles.adr_template_style", Placeholder: "ADR_TEMPLATE_STYLE", Label: "ADR 템플릿", Inline: true, get: text(func(in *ProjectInput) string { return in.TemplateStyles.ADRTemplateStyle })},
	{Path: "template_styles.pr_template_style", Placeholder: "PR_TEMPLATE_STYLE", Label: "PR 템플릿", Inline: true, get: text(func(in *ProjectInput) string { return in.TemplateStyles.PRTemplateStyle })},
	{Path: "template_styles.test_plan_style", Placeholder: "TEST_PLAN_STYLE", Label: "테스트 계획", Inline: true, get: text(func(in *ProjectInput) string { return in.TemplateStyles.TestPlanStyle })},
	{Path: "template_styles.release_template_style", Placeholder: "RELEASE_TEMPLATE_STYLE", Label: "릴리스 템플릿", Inline: true, get: text(func(in *ProjectInput) string { return in.TemplateStyles.ReleaseTemplateStyle })},
}

var fieldsByPath = func() map[string]Field {
	m := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		m[f.Path] = f
	}
	return m
}()

// FieldByPath finds a field by its dotted path, e.g. "tech.envs".
func FieldByPath(path string) (Field, bool) {
	f, ok := fieldsByPath[path]
	return f, ok
}

// Lookup reads the value at a dotted path.
func (in ProjectInput) Lookup(path string) (Value, bool) {
	f, ok := FieldByPath(path)
	if !ok {
		return Value{}, false
	}
	return f.Value(&in), true
}
