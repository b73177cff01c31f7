package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/2riing/vibe-promptgen/pkg/model"
)

func TestValidate_SampleHasNoErrors(t *testing.T) {
	report := Validate(model.Sample())
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.False(t, report.HasErrors())
}

func TestValidate_DefaultsReportEveryRequiredField(t *testing.T) {
	report := Validate(model.Defaults())

	require.Len(t, report.Errors, len(Required))
	for i, rule := range Required {
		assert.Equal(t, rule.Path, report.Errors[i].Field, "errors follow table order")
		assert.Equal(t, model.LevelError, report.Errors[i].Level)
		assert.Equal(t, MsgMissing, report.Errors[i].Message)
	}
}

func TestValidate_CoreScenariosUnderMinimum(t *testing.T) {
	for _, scenarios := range []model.TextList{{}, {"only one"}} {
		in := model.Sample()
		in.Context.CoreScenarios = scenarios

		report := Validate(in)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, "context.core_scenarios", report.Errors[0].Field)
	}

	in := model.Sample()
	in.Context.CoreScenarios = model.TextList{"one"}
	report := Validate(in)
	assert.Equal(t, "최소 2개 항목이 필요합니다. (현재 1개)", report.Errors[0].Message)
}

func TestValidate_EnvsMustContainDev(t *testing.T) {
	in := model.Sample()
	in.Tech.Envs = model.TextList{"staging", "prod"}

	report := Validate(in)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "tech.envs", report.Errors[0].Field)
	assert.Equal(t, "'dev' 항목이 포함되어야 합니다.", report.Errors[0].Message)
}

func TestValidate_WhitespaceOnlyIsMissing(t *testing.T) {
	in := model.Sample()
	in.Tech.Deployment = "   "

	report := Validate(in)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "tech.deployment", report.Errors[0].Field)
	assert.Equal(t, MsgMissing, report.Errors[0].Message)
}

func TestValidate_AllViolationsReported(t *testing.T) {
	in := model.Sample()
	in.Context.ProductOneLiner = ""
	in.Context.TopRisks = model.TextList{"one"}
	in.Tech.Envs = model.TextList{"prod"}

	report := Validate(in)
	fields := report.ErrorFields()
	assert.Len(t, report.Errors, 3)
	assert.True(t, fields["context.product_one_liner"])
	assert.True(t, fields["context.top_risks"])
	assert.True(t, fields["tech.envs"])
}

func TestValidate_WarnsForEachBlankOptionalField(t *testing.T) {
	in := model.Sample()
	in.DocMeta.Scope = ""
	in.Policies.ReviewPolicy = " "
	in.TemplateStyles.PRTemplateStyle = ""

	report := Validate(in)
	require.Len(t, report.Warnings, 3)
	assert.Equal(t, "doc_meta.scope", report.Warnings[0].Field)
	assert.Equal(t, "policies.review_policy", report.Warnings[1].Field)
	assert.Equal(t, "template_styles.pr_template_style", report.Warnings[2].Field)
	for _, w := range report.Warnings {
		assert.Equal(t, model.LevelWarn, w.Level)
		assert.Equal(t, MsgUnfilled, w.Message)
	}
}

func TestValidate_RequiredFieldsNeverWarn(t *testing.T) {
	report := Validate(model.ProjectInput{})
	for _, w := range report.Warnings {
		assert.False(t, isRequired(w.Field), "required field %s should not warn", w.Field)
	}
	assert.Len(t, report.Warnings, len(model.Fields)-len(Required))
}

func TestValidate_TechStackGivenAsList(t *testing.T) {
	in := model.Sample()
	require.NoError(t, yaml.Unmarshal([]byte("tech_stack: [Go, PostgreSQL]\n"), &in.Tech))
	report := Validate(in)
	assert.Empty(t, report.Errors)

	require.NoError(t, yaml.Unmarshal([]byte("tech_stack: ['', ' ']\n"), &in.Tech))
	report = Validate(in)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "tech.tech_stack", report.Errors[0].Field)
	assert.Equal(t, MsgMissing, report.Errors[0].Message)
}
