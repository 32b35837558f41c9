package commands

import (
	"context"
	"errors"
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"
	"relay/internal/core/domain/model/topic"
	"relay/internal/core/domain/model/transit"
	"relay/internal/pkg/errs"
)

const (
	// CreationCostCredits is debited from the creator for every new package.
	CreationCostCredits = 100

	// TemplateBonusCredits is credited to a template's author when the
	// template is saved or reused by someone else.
	TemplateBonusCredits = 10
)

// CreatePackageCommandHandler handles the business logic for package creation.
//
// Creation is the largest atomic unit in the system: it writes the package
// document, opens the creator's transit record, initializes or bumps the
// topic, optionally saves or credits a template, debits the creator, and
// appends the matching ledger rows and feed event. All of it commits as one
// unit or not at all.
type CreatePackageCommandHandler struct {
	uowFactory CreationUoWFactory
}

// NewCreatePackageCommandHandler creates a handler for package creation.
func NewCreatePackageCommandHandler(uowFactory CreationUoWFactory) CreatePackageCommandHandler {
	return CreatePackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the package creation command. The creator becomes the
// package's first courier and follower and pays the creation cost. Conflict
// failures rerun the whole unit.
func (h CreatePackageCommandHandler) Handle(ctx context.Context, cmd CreatePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return withConflictRetry(ctx, "create package", func(ctx context.Context) error {
		return h.handleOnce(ctx, cmd)
	})
}

func (h CreatePackageCommandHandler) handleOnce(ctx context.Context, cmd CreatePackageCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()
	topicRepo := uow.TopicRepository()
	activityRepo := uow.ActivityRepository()

	creator, err := accountRepo.Get(ctx, cmd.CreatorID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	// Resolve the reused template first: its author becomes the package's
	// templateBy reference.
	var reusedTemplate *topic.Template
	var templateBy *kernel.UUID
	if cmd.TemplateID() != nil {
		reusedTemplate, err = topicRepo.GetTemplate(ctx, *cmd.TemplateID())
		if err != nil {
			return err
		}
		author := reusedTemplate.Author()
		templateBy = &author
	}

	pkg, err := pack.NewPackage(cmd.PackageID(), cmd.CreatorID(), cmd.Content(), cmd.Origin(), now, templateBy)
	if err != nil {
		return err
	}

	topicRef := cmd.Content().Topic()
	packageTopic, err := topicRepo.Get(ctx, topicRef.Reference())
	isNewTopic := errors.Is(err, errs.ErrObjectNotFound)
	if isNewTopic {
		packageTopic, err = topic.NewTopic(topicRef.Reference(), topicRef.Name(), "")
	}
	if err != nil {
		return err
	}
	packageTopic.IncrementPackages()

	if reusedTemplate != nil {
		if err = h.creditReusedTemplate(ctx, uow, reusedTemplate, creator, now); err != nil {
			return err
		}
	}

	if cmd.SaveAsTemplate() {
		if err = h.saveAsTemplate(ctx, uow, cmd, packageTopic, creator, now); err != nil {
			return err
		}
	}

	if err = creator.Debit(CreationCostCredits); err != nil {
		return err
	}

	creationRow, err := account.NewActivity(
		creator.ID(), now, pkg.ID(), account.ObjectPackage, cmd.Content().Headline(),
		account.ActivityPackageCreation,
		creator.ID(), creator.DisplayName(), creator.PicURL(), -CreationCostCredits)
	if err != nil {
		return err
	}
	if err = activityRepo.Add(ctx, creationRow); err != nil {
		return err
	}

	if err = creator.SetCurrentPackage(pkg.ID()); err != nil {
		return err
	}
	if _, err = creator.RecordFollowing(pkg.ID(), now); err != nil {
		return err
	}

	record, err := transit.NewRecord(pkg.ID(), creator.ID(), cmd.Origin(), now)
	if err != nil {
		return err
	}
	if err = uow.TransitRepository().Add(ctx, record); err != nil {
		return err
	}

	event, err := account.NewFeedEvent(
		kernel.NewUUID(), now, account.ActivityPackageCreation,
		creator.ID(), creator.DisplayName(), creator.PicURL(),
		pkg.ID(), account.ObjectPackage, cmd.Content().Headline(),
		"", "", pkg.Followers())
	if err != nil {
		return err
	}
	if err = activityRepo.AddFeedEvent(ctx, event); err != nil {
		return err
	}

	if isNewTopic {
		err = topicRepo.Add(ctx, packageTopic)
	} else {
		err = topicRepo.Update(ctx, packageTopic)
	}
	if err != nil {
		return err
	}

	if err = uow.PackageRepository().Add(ctx, pkg); err != nil {
		return err
	}
	if err = accountRepo.Update(ctx, creator); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// creditReusedTemplate bumps the reused template's usage counter and credits
// its author, unless the creator reused their own template.
func (h CreatePackageCommandHandler) creditReusedTemplate(
	ctx context.Context,
	uow CreationUoW,
	reusedTemplate *topic.Template,
	creator *account.Account,
	now time.Time,
) error {
	reusedTemplate.IncrementPackages()
	if err := uow.TopicRepository().UpdateTemplate(ctx, reusedTemplate); err != nil {
		return err
	}

	if reusedTemplate.Author().IsEqual(creator.ID()) {
		return nil
	}

	author, err := uow.AccountRepository().Get(ctx, reusedTemplate.Author())
	if err != nil {
		return err
	}
	if err = author.Credit(TemplateBonusCredits); err != nil {
		return err
	}

	bonusRow, err := account.NewActivity(
		author.ID(), now, reusedTemplate.ID(), account.ObjectTemplate, reusedTemplate.Headline(),
		account.ActivityTemplateBonus,
		creator.ID(), creator.DisplayName(), creator.PicURL(), TemplateBonusCredits)
	if err != nil {
		return err
	}
	if err = uow.ActivityRepository().Add(ctx, bonusRow); err != nil {
		return err
	}

	return uow.AccountRepository().Update(ctx, author)
}

// saveAsTemplate stores the new package's content as a reusable template and
// credits the creator for contributing it.
func (h CreatePackageCommandHandler) saveAsTemplate(
	ctx context.Context,
	uow CreationUoW,
	cmd CreatePackageCommand,
	packageTopic *topic.Topic,
	creator *account.Account,
	now time.Time,
) error {
	newTemplate, err := topic.NewTemplate(
		kernel.NewUUID(), packageTopic.ID(), creator.ID(),
		cmd.Content().Category(), cmd.Content().Headline(), cmd.Content().Description())
	if err != nil {
		return err
	}
	if err = uow.TopicRepository().AddTemplate(ctx, newTemplate); err != nil {
		return err
	}
	packageTopic.IncrementTemplates()

	if err = creator.Credit(TemplateBonusCredits); err != nil {
		return err
	}

	bonusRow, err := account.NewActivity(
		creator.ID(), now, newTemplate.ID(), account.ObjectTemplate, cmd.Content().Headline(),
		account.ActivityTemplateBonus,
		creator.ID(), creator.DisplayName(), creator.PicURL(), TemplateBonusCredits)
	if err != nil {
		return err
	}

	return uow.ActivityRepository().Add(ctx, bonusRow)
}
