package cmd

import (
	"relay/internal/adapters/out/postgres"
	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	packageCache queries.PackageCache
	mediaStore   ports.MediaStore
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	packageCache queries.PackageCache,
	mediaStore ports.MediaStore,
) CompositionRoot {
	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		packageCache: packageCache,
		mediaStore:   mediaStore,
	}
}

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	var f commands.CreationUoWFactory = FuncCreationUoWFactory(func() commands.CreationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePackageCommandHandler(f)
}

func (c *CompositionRoot) CreatePickupPackageCommandHandler() commands.PickupPackageCommandHandler {
	return commands.NewPickupPackageCommandHandler(c.transitUoWFactory())
}

func (c *CompositionRoot) CreateDropoffPackageCommandHandler() commands.DropoffPackageCommandHandler {
	return commands.NewDropoffPackageCommandHandler(c.transitUoWFactory())
}

func (c *CompositionRoot) CreateTrackMovementCommandHandler() commands.TrackMovementCommandHandler {
	return commands.NewTrackMovementCommandHandler(c.transitUoWFactory())
}

func (c *CompositionRoot) CreateFollowPackageCommandHandler() commands.FollowPackageCommandHandler {
	return commands.NewFollowPackageCommandHandler(c.followUoWFactory())
}

func (c *CompositionRoot) CreateUnfollowPackageCommandHandler() commands.UnfollowPackageCommandHandler {
	return commands.NewUnfollowPackageCommandHandler(c.followUoWFactory())
}

func (c *CompositionRoot) CreateCleanupMediaCommandHandler() commands.CleanupMediaCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanupMediaCommandHandler(f, c.mediaStore, commands.DefaultMediaRetention)
}

func (c *CompositionRoot) CreateGetPackageQueryHandler() queries.GetPackageQueryHandler {
	return queries.NewGetPackageQueryHandler(c.gormDB, c.packageCache)
}

func (c *CompositionRoot) CreateGetAccountActivitiesQueryHandler() queries.GetAccountActivitiesQueryHandler {
	return queries.NewGetAccountActivitiesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPublicFeedQueryHandler() queries.GetPublicFeedQueryHandler {
	return queries.NewGetPublicFeedQueryHandler(c.gormDB)
}

// PackageCache exposes the configured package view cache so the HTTP layer
// can invalidate views after lifecycle writes.
func (c *CompositionRoot) PackageCache() queries.PackageCache {
	return c.packageCache
}

func (c *CompositionRoot) transitUoWFactory() commands.TransitUoWFactory {
	return FuncTransitUoWFactory(func() commands.TransitUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) followUoWFactory() commands.FollowUoWFactory {
	return FuncFollowUoWFactory(func() commands.FollowUoW {
		return c.uowFactory.Create()
	})
}

type FuncCreationUoWFactory func() commands.CreationUoW

func (f FuncCreationUoWFactory) Create() commands.CreationUoW {
	return f()
}

type FuncTransitUoWFactory func() commands.TransitUoW

func (f FuncTransitUoWFactory) Create() commands.TransitUoW {
	return f()
}

type FuncFollowUoWFactory func() commands.FollowUoW

func (f FuncFollowUoWFactory) Create() commands.FollowUoW {
	return f()
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}
