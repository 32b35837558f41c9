package commands

import (
	"errors"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"
	"relay/internal/pkg/guard"
)

var ErrCreatePackageCommandIsNotConstructed = errors.New(
	"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
)

// CreatePackageCommand represents a request to create a new package.
// The caller supplies the authenticated creator identity and their resolved
// location explicitly; the content arrives already validated as a value
// object, optionally copied from an existing template.
type CreatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID      kernel.UUID
	creatorID      kernel.UUID
	content        pack.Content
	origin         kernel.GeoPoint
	saveAsTemplate bool
	templateID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePackageCommand creates a command to register a new package.
// templateID references the template the content was copied from, or nil
// when the package was composed from scratch.
func NewCreatePackageCommand(
	packageID kernel.UUID,
	creatorID kernel.UUID,
	content pack.Content,
	origin kernel.GeoPoint,
	saveAsTemplate bool,
	templateID *kernel.UUID,
) (CreatePackageCommand, error) {
	cmd := CreatePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setCreatorID(creatorID),
		cmd.setContent(content),
		cmd.setOrigin(origin),
		cmd.setTemplateID(templateID),
	); err != nil {
		return CreatePackageCommand{}, err
	}

	cmd.saveAsTemplate = saveAsTemplate
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

// PackageID returns the identifier for the new package.
func (c CreatePackageCommand) PackageID() kernel.UUID {
	return c.packageID
}

// CreatorID returns the authenticated creator's identifier.
func (c CreatePackageCommand) CreatorID() kernel.UUID {
	return c.creatorID
}

// Content returns the authored package content.
func (c CreatePackageCommand) Content() pack.Content {
	return c.content
}

// Origin returns the creator's resolved location.
func (c CreatePackageCommand) Origin() kernel.GeoPoint {
	return c.origin
}

// SaveAsTemplate reports whether the content should also be saved as a
// reusable template.
func (c CreatePackageCommand) SaveAsTemplate() bool {
	return c.saveAsTemplate
}

// TemplateID returns the template the content was copied from, or nil.
func (c CreatePackageCommand) TemplateID() *kernel.UUID {
	return c.templateID
}

func (c *CreatePackageCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}

	c.packageID = packageID
	return nil
}

func (c *CreatePackageCommand) setCreatorID(creatorID kernel.UUID) error {
	if err := creatorID.Validate(); err != nil {
		return err
	}

	c.creatorID = creatorID
	return nil
}

func (c *CreatePackageCommand) setContent(content pack.Content) error {
	if err := content.Validate(); err != nil {
		return err
	}

	c.content = content
	return nil
}

func (c *CreatePackageCommand) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	c.origin = origin
	return nil
}

func (c *CreatePackageCommand) setTemplateID(templateID *kernel.UUID) error {
	if templateID == nil {
		return nil
	}
	if err := templateID.Validate(); err != nil {
		return err
	}

	ref := *templateID
	c.templateID = &ref
	return nil
}
