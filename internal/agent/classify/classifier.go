// Package classify decides which meal workflow a user message belongs to.
// Hard keyword rules win over the model, and on any model or parse failure
// the classifier degrades to a full recommendation rather than erroring out.
package classify

import (
	"context"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/mealpick-core/server/internal/agent/model"
	"github.com/mealpick-core/server/internal/agent/prompts"
	logx "github.com/mealpick-core/server/pkg/logger"
)

// recipe vocabulary forces RECIPE_ONLY before the model ever runs
var recipeKeywords = []string{
	"레시피",
	"만드는 법",
	"만드는법",
	"조리법",
	"어떻게 만들",
	"recipe",
	"how to make",
	"how to cook",
}

// dining-out vocabulary forces RESTAURANT_DELIVERY
var deliveryKeywords = []string{
	"외식",
	"배달",
	"시켜먹",
	"레스토랑",
	"식당",
	"맛집",
	"delivery",
	"eat out",
	"takeout",
}

// Classifier maps a user message to a workflow selection.
type Classifier struct {
	cm        einomodel.BaseChatModel
	modelName string
}

func New(cm einomodel.BaseChatModel, modelName string) *Classifier {
	return &Classifier{cm: cm, modelName: modelName}
}

// Classify never fails: keyword overrides are tried first, then the model,
// and finally the full-recommendation fallback. The returned selection's
// roles are always resolved from the static workflow table.
//
// Keyword rules look at the current message only. historyContext carries the
// rendered prior turns and is shown to the model alone, so vocabulary from an
// earlier turn cannot hijack the hard overrides.
func (c *Classifier) Classify(ctx context.Context, userMessage string, historyContext string) *model.WorkflowSelection {
	if sel := keywordOverride(userMessage); sel != nil {
		logx.Info().
			Str("workflow_type", string(sel.Type)).
			Str("rationale", sel.Rationale).
			Msg("workflow selected by keyword rule")
		return sel
	}

	sel, err := c.classifyWithModel(ctx, userMessage, historyContext)
	if err != nil {
		logx.Warn().Err(err).Msg("classifier model failed, falling back to full recommendation")
		return fallbackSelection(err.Error())
	}

	logx.Info().
		Str("workflow_type", string(sel.Type)).
		Str("primary_role", string(sel.PrimaryRole)).
		Msg("workflow selected by model")
	return sel
}

func (c *Classifier) classifyWithModel(ctx context.Context, userMessage string, historyContext string) (*model.WorkflowSelection, error) {
	system, err := prompts.RenderClassifierSystem(ctx)
	if err != nil {
		return nil, err
	}

	content := userMessage
	if historyContext != "" {
		content = historyContext + "\n\n" + userMessage
	}
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(content),
	}
	resp, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	return ParseSelection(resp.Content)
}

// keywordOverride applies the hard vocabulary rules. It returns nil when no
// rule matches and the model should decide.
func keywordOverride(userMessage string) *model.WorkflowSelection {
	lowered := strings.ToLower(userMessage)

	if match := firstMatch(lowered, recipeKeywords); match != "" {
		return &model.WorkflowSelection{
			Type:        model.WorkflowRecipeOnly,
			Roles:       model.RolesFor(model.WorkflowRecipeOnly),
			PrimaryRole: model.RoleChef,
			Rationale:   "recipe keyword rule matched: " + match,
		}
	}

	if match := firstMatch(lowered, deliveryKeywords); match != "" {
		return &model.WorkflowSelection{
			Type:        model.WorkflowRestaurantDelivery,
			Roles:       model.RolesFor(model.WorkflowRestaurantDelivery),
			PrimaryRole: model.RoleBudget,
			Rationale:   "dining-out keyword rule matched: " + match,
		}
	}

	return nil
}

func firstMatch(lowered string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return kw
		}
	}
	return ""
}

// fallbackSelection is the safe default when the model is unavailable or its
// output cannot be parsed.
func fallbackSelection(reason string) *model.WorkflowSelection {
	return &model.WorkflowSelection{
		Type:        model.WorkflowFullRecommendation,
		Roles:       model.RolesFor(model.WorkflowFullRecommendation),
		PrimaryRole: model.RoleTaste,
		Rationale:   "classification unavailable (" + reason + "), defaulting to full recommendation",
	}
}
