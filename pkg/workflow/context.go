package workflow

import (
	"fmt"
	"strings"

	"github.com/procura-ai/procura/pkg/models"
)

// WelcomeMessage maps the current step to user-facing guidance for the start
// of a chat turn. Pure function, exhaustive over known steps, generic
// fallback otherwise.
func WelcomeMessage(step models.WorkflowStep, emailID, projectID string) string {
	switch step {
	case models.StepProjectToBeCreated:
		return "Welcome! Let's set up a new sourcing project. Tell me the project title, " +
			"a short description, your email, and an approximate budget."
	case models.StepProjectCreated:
		return fmt.Sprintf("Your project %s is created. Next, list the milestones "+
			"with their delivery dates (for example: \"Ship laptops - due 2025-11-01\").",
			describeProject(emailID, projectID))
	case models.StepMilestonesCreated:
		return "Milestones are saved. Say \"find suppliers\" and I'll search for matching vendors."
	case models.StepSuppliersFound:
		return "I found suppliers for you. Pick the ones you want by their numbers (for example: \"1 and 3\")."
	case models.StepSuppliersSelected:
		return "Suppliers are selected. Say \"publish\" to publish the project, and confirm when asked."
	case models.StepPublished:
		return "Your sourcing project is published. Say \"reset\" to start a new one."
	case models.StepError:
		return "Something went wrong with your last project. Let's start over: " +
			"tell me about the new project you want to create."
	default:
		return "Let's get started with your sourcing project. Tell me what you want to source."
	}
}

// PlannerContext maps the current step to machine-facing context describing
// what is legal now, consumed by the upstream planning layer.
func PlannerContext(step models.WorkflowStep) string {
	var phase string

	switch step {
	case models.StepProjectToBeCreated:
		phase = "No sourcing project exists yet. The user must create a project before anything else."
	case models.StepProjectCreated:
		phase = "A sourcing project exists. The user should add milestones next."
	case models.StepMilestonesCreated:
		phase = "Milestones are attached. The user should search for suppliers next."
	case models.StepSuppliersFound:
		phase = "Supplier search results are available. The user should select suppliers by order number."
	case models.StepSuppliersSelected:
		phase = "Suppliers are selected. The user can publish the project and must confirm the publish."
	case models.StepPublished:
		phase = "The project is published. Only a reset is possible."
	case models.StepError:
		phase = "The workflow is in an error state. The user should create a new project or reset."
	default:
		phase = "Workflow state is unknown. Treat the user as starting fresh."
	}

	return fmt.Sprintf("%s Legal actions: %s.", phase, strings.Join(LegalActions(step), ", "))
}

func describeProject(emailID, projectID string) string {
	switch {
	case projectID != "":
		return fmt.Sprintf("(ID %s)", projectID)
	case emailID != "":
		return fmt.Sprintf("(ref %s)", emailID)
	default:
		return ""
	}
}
