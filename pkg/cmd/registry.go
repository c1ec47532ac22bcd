package cmd

import (
	"log/slog"

	"github.com/procura-ai/procura/pkg/actions/createproject"
	"github.com/procura-ai/procura/pkg/actions/findsuppliers"
	"github.com/procura-ai/procura/pkg/actions/publishproject"
	"github.com/procura-ai/procura/pkg/actions/selectsuppliers"
	"github.com/procura-ai/procura/pkg/actions/session"
	"github.com/procura-ai/procura/pkg/actions/upsertmilestones"
	"github.com/procura-ai/procura/pkg/protocol"
	"github.com/procura-ai/procura/pkg/registry"
)

// NewRegistry builds the action registry with every workflow action wired
// to the given sourcing backend client.
func NewRegistry(logger *slog.Logger, client protocol.SourcingClient) *registry.Registry {
	reg := registry.NewRegistry(logger)

	for _, action := range []protocol.Action{
		createproject.NewAction(client),
		upsertmilestones.NewAction(client),
		findsuppliers.NewAction(client),
		selectsuppliers.NewAction(client),
		publishproject.NewPublishAction(),
		publishproject.NewConfirmAction(client),
		session.NewResetAction(),
		session.NewStatusAction(),
	} {
		if err := reg.Register(action); err != nil {
			panic(err)
		}
	}

	return reg
}
