package model

// WorkflowType names the recipe of roles that run for a classified request.
type WorkflowType string

const (
	WorkflowFullRecommendation WorkflowType = "FULL_RECOMMENDATION"
	WorkflowRestaurantDelivery WorkflowType = "RESTAURANT_DELIVERY"
	WorkflowRecipeOnly         WorkflowType = "RECIPE_ONLY"
	WorkflowBudgetCheck        WorkflowType = "BUDGET_CHECK"
	WorkflowNutritionInfo      WorkflowType = "NUTRITION_INFO"
	WorkflowScheduleCheck      WorkflowType = "SCHEDULE_CHECK"
	WorkflowQuickMeal          WorkflowType = "QUICK_MEAL"
)

// Role is one specialised contributor in a pipeline run.
type Role string

const (
	RoleTaste     Role = "taste"
	RoleNutrition Role = "nutrition"
	RoleBudget    Role = "budget"
	RoleSchedule  Role = "schedule"
	RoleChef      Role = "chef"
)

// AllRoles is the complete role set in FULL_RECOMMENDATION order.
var AllRoles = []Role{RoleTaste, RoleNutrition, RoleBudget, RoleSchedule, RoleChef}

// workflowRoles is the static role table. The order of each list is the
// execution order; it is configuration, never inferred at runtime.
var workflowRoles = map[WorkflowType][]Role{
	WorkflowFullRecommendation: {RoleTaste, RoleNutrition, RoleBudget, RoleSchedule, RoleChef},
	WorkflowRestaurantDelivery: {RoleBudget, RoleSchedule, RoleNutrition, RoleTaste},
	WorkflowRecipeOnly:         {RoleChef},
	WorkflowBudgetCheck:        {RoleBudget},
	WorkflowNutritionInfo:      {RoleNutrition},
	WorkflowScheduleCheck:      {RoleSchedule},
	WorkflowQuickMeal:          {RoleSchedule, RoleTaste},
}

// RolesFor returns the prescribed ordered role list for a workflow type.
// Unknown types fall back to the full recommendation set.
func RolesFor(t WorkflowType) []Role {
	roles, ok := workflowRoles[t]
	if !ok {
		roles = workflowRoles[WorkflowFullRecommendation]
	}
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}

// KnownWorkflowType reports whether t is one of the closed workflow enum values.
func KnownWorkflowType(t WorkflowType) bool {
	_, ok := workflowRoles[t]
	return ok
}

// WorkflowSelection is the classifier's verdict for one request.
// Roles is always exactly the prescribed set for Type.
type WorkflowSelection struct {
	Type        WorkflowType `json:"workflow_type"`
	Roles       []Role       `json:"roles"`
	PrimaryRole Role         `json:"primary_role"`
	Rationale   string       `json:"rationale"`
}

// TaskSpec is one planned role invocation. Reads lists the blackboard
// namespaces the role may consult (all prior roles in the plan); WriteKey is
// the namespace it must write its contribution under. Optional marks roles
// whose absence never blocks aggregation (the chef in a full recommendation).
type TaskSpec struct {
	Role     Role
	Reads    []Role
	WriteKey string
	Optional bool
}
