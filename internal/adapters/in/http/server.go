// Package http exposes the package lifecycle and its read views over a JSON
// API. Handlers translate requests into commands and queries; every domain
// outcome maps onto a fixed status code so clients can react to rule
// violations without parsing messages.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"
	"relay/internal/core/domain/model/transit"
	"relay/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP routes to the application's command and query
// handlers.
type Server struct {
	createPackageHandler   commands.CreatePackageCommandHandler
	pickupPackageHandler   commands.PickupPackageCommandHandler
	dropoffPackageHandler  commands.DropoffPackageCommandHandler
	followPackageHandler   commands.FollowPackageCommandHandler
	unfollowPackageHandler commands.UnfollowPackageCommandHandler
	trackMovementHandler   commands.TrackMovementCommandHandler

	getPackageHandler           queries.GetPackageQueryHandler
	getAccountActivitiesHandler queries.GetAccountActivitiesQueryHandler
	getPublicFeedHandler        queries.GetPublicFeedQueryHandler

	// packageCache holds the package view cache so lifecycle writes can
	// drop the stale view. May be nil when no cache is configured.
	packageCache queries.PackageCache
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	createPackageHandler commands.CreatePackageCommandHandler,
	pickupPackageHandler commands.PickupPackageCommandHandler,
	dropoffPackageHandler commands.DropoffPackageCommandHandler,
	followPackageHandler commands.FollowPackageCommandHandler,
	unfollowPackageHandler commands.UnfollowPackageCommandHandler,
	trackMovementHandler commands.TrackMovementCommandHandler,
	getPackageHandler queries.GetPackageQueryHandler,
	getAccountActivitiesHandler queries.GetAccountActivitiesQueryHandler,
	getPublicFeedHandler queries.GetPublicFeedQueryHandler,
	packageCache queries.PackageCache,
) *Server {
	return &Server{
		createPackageHandler:        createPackageHandler,
		pickupPackageHandler:        pickupPackageHandler,
		dropoffPackageHandler:       dropoffPackageHandler,
		followPackageHandler:        followPackageHandler,
		unfollowPackageHandler:      unfollowPackageHandler,
		trackMovementHandler:        trackMovementHandler,
		getPackageHandler:           getPackageHandler,
		getAccountActivitiesHandler: getAccountActivitiesHandler,
		getPublicFeedHandler:        getPublicFeedHandler,
		packageCache:                packageCache,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/packages", s.CreatePackage)
	api.GET("/packages/:id", s.GetPackage)
	api.POST("/packages/:id/pickup", s.PickupPackage)
	api.POST("/packages/:id/dropoff", s.DropoffPackage)
	api.POST("/packages/:id/follow", s.FollowPackage)
	api.POST("/packages/:id/unfollow", s.UnfollowPackage)
	api.POST("/packages/:id/movements", s.TrackMovement)

	api.GET("/accounts/:id/activities", s.GetAccountActivities)
	api.GET("/feed", s.GetPublicFeed)
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPointBody is a latitude/longitude pair in request and response bodies.
type GeoPointBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RecipientBody describes who a package is addressed to.
type RecipientBody struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	PicURL   string `json:"pic_url,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
}

// DestinationBody describes where a package must end up.
type DestinationBody struct {
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TopicBody references the cause a package belongs to. An empty ref starts
// a new topic.
type TopicBody struct {
	Name string `json:"name"`
	Ref  string `json:"ref,omitempty"`
}

// ExternalActionBody is a call-to-action link shown with the package.
type ExternalActionBody struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ContentBody is the authored document of a new package.
type ContentBody struct {
	Category        string               `json:"category"`
	Headline        string               `json:"headline"`
	Description     string               `json:"description,omitempty"`
	DueDate         time.Time            `json:"due_date"`
	Recipient       RecipientBody        `json:"recipient"`
	Destination     DestinationBody      `json:"destination"`
	Topic           TopicBody            `json:"topic"`
	CoverPicURL     string               `json:"cover_pic_url,omitempty"`
	DropoffMessage  string               `json:"dropoff_message,omitempty"`
	ExternalActions []ExternalActionBody `json:"external_actions,omitempty"`
}

// CreatePackageRequest is the body of POST /packages.
type CreatePackageRequest struct {
	CreatorID      string       `json:"creator_id"`
	Origin         GeoPointBody `json:"origin"`
	Content        ContentBody  `json:"content"`
	SaveAsTemplate bool         `json:"save_as_template"`
	TemplateID     string       `json:"template_id,omitempty"`
}

// CreatePackageResponse returns the id assigned to the new package.
type CreatePackageResponse struct {
	ID string `json:"id"`
}

// CourierActionRequest is the body of the pickup, dropoff and movement
// routes: the acting courier and their resolved location.
type CourierActionRequest struct {
	CourierID string       `json:"courier_id"`
	Location  GeoPointBody `json:"location"`
	Message   string       `json:"message,omitempty"`
}

// FollowRequest is the body of the follow and unfollow routes.
type FollowRequest struct {
	UserID string `json:"user_id"`
}

// CreatePackage handles POST /api/v1/packages.
func (s *Server) CreatePackage(ctx echo.Context) error {
	var request CreatePackageRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	creatorID, err := kernel.UUIDFromString(request.CreatorID)
	if err != nil {
		return badRequest(ctx, "invalid creator_id")
	}

	origin, err := kernel.NewGeoPoint(request.Origin.Latitude, request.Origin.Longitude)
	if err != nil {
		return badRequest(ctx, "invalid origin: "+err.Error())
	}

	content, err := contentFromBody(request.Content)
	if err != nil {
		return badRequest(ctx, "invalid content: "+err.Error())
	}

	var templateID *kernel.UUID
	if request.TemplateID != "" {
		parsed, parseErr := kernel.UUIDFromString(request.TemplateID)
		if parseErr != nil {
			return badRequest(ctx, "invalid template_id")
		}
		templateID = &parsed
	}

	packageID := kernel.NewUUID()
	cmd, err := commands.NewCreatePackageCommand(
		packageID, creatorID, content, origin, request.SaveAsTemplate, templateID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatePackageResponse{ID: packageID.String()})
}

// GetPackage handles GET /api/v1/packages/:id.
func (s *Server) GetPackage(ctx echo.Context) error {
	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid package id")
	}

	query, err := queries.NewGetPackageQuery(packageID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getPackageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// PickupPackage handles POST /api/v1/packages/:id/pickup.
func (s *Server) PickupPackage(ctx echo.Context) error {
	packageID, courierID, location, err := s.bindCourierAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewPickupPackageCommand(packageID, courierID, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.pickupPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.invalidateView(ctx.Request().Context(), packageID)
	return ctx.NoContent(http.StatusNoContent)
}

// DropoffPackage handles POST /api/v1/packages/:id/dropoff.
func (s *Server) DropoffPackage(ctx echo.Context) error {
	var request CourierActionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	packageID, courierID, location, err := parseCourierAction(ctx.Param("id"), request)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDropoffPackageCommand(packageID, courierID, location, request.Message)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.dropoffPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.invalidateView(ctx.Request().Context(), packageID)
	return ctx.NoContent(http.StatusNoContent)
}

// TrackMovement handles POST /api/v1/packages/:id/movements.
func (s *Server) TrackMovement(ctx echo.Context) error {
	packageID, courierID, location, err := s.bindCourierAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewTrackMovementCommand(packageID, courierID, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.trackMovementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.invalidateView(ctx.Request().Context(), packageID)
	return ctx.NoContent(http.StatusNoContent)
}

// FollowPackage handles POST /api/v1/packages/:id/follow.
func (s *Server) FollowPackage(ctx echo.Context) error {
	packageID, userID, err := bindFollowAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewFollowPackageCommand(packageID, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.followPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.invalidateView(ctx.Request().Context(), packageID)
	return ctx.NoContent(http.StatusNoContent)
}

// UnfollowPackage handles POST /api/v1/packages/:id/unfollow.
func (s *Server) UnfollowPackage(ctx echo.Context) error {
	packageID, userID, err := bindFollowAction(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUnfollowPackageCommand(packageID, userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.unfollowPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	s.invalidateView(ctx.Request().Context(), packageID)
	return ctx.NoContent(http.StatusNoContent)
}

// GetAccountActivities handles GET /api/v1/accounts/:id/activities.
func (s *Server) GetAccountActivities(ctx echo.Context) error {
	owner, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid account id")
	}

	limit, err := parseLimit(ctx.QueryParam("limit"))
	if err != nil {
		return badRequest(ctx, "invalid limit")
	}

	query, err := queries.NewGetAccountActivitiesQuery(owner, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	activities, err := s.getAccountActivitiesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, activities)
}

// GetPublicFeed handles GET /api/v1/feed.
func (s *Server) GetPublicFeed(ctx echo.Context) error {
	var olderThan time.Time
	if raw := ctx.QueryParam("older_than"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return badRequest(ctx, "invalid older_than, expected RFC 3339")
		}
		olderThan = parsed
	}

	limit, err := parseLimit(ctx.QueryParam("limit"))
	if err != nil {
		return badRequest(ctx, "invalid limit")
	}

	query, err := queries.NewGetPublicFeedQuery(olderThan, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	events, err := s.getPublicFeedHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, events)
}

// invalidateView drops the cached package view after a lifecycle write.
// Best effort: a stale entry also falls out on TTL expiry.
func (s *Server) invalidateView(ctx context.Context, packageID kernel.UUID) {
	if s.packageCache == nil {
		return
	}
	_ = s.packageCache.Invalidate(ctx, packageID)
}

func (s *Server) bindCourierAction(ctx echo.Context) (kernel.UUID, kernel.UUID, kernel.GeoPoint, error) {
	var request CourierActionRequest
	if err := ctx.Bind(&request); err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, errors.New("invalid request body")
	}
	return parseCourierAction(ctx.Param("id"), request)
}

func parseCourierAction(
	rawPackageID string,
	request CourierActionRequest,
) (kernel.UUID, kernel.UUID, kernel.GeoPoint, error) {
	packageID, err := kernel.UUIDFromString(rawPackageID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, errors.New("invalid package id")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, errors.New("invalid courier_id")
	}

	location, err := kernel.NewGeoPoint(request.Location.Latitude, request.Location.Longitude)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.GeoPoint{}, err
	}

	return packageID, courierID, location, nil
}

func bindFollowAction(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid package id")
	}

	var request FollowRequest
	if err = ctx.Bind(&request); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid request body")
	}

	userID, err := kernel.UUIDFromString(request.UserID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid user_id")
	}

	return packageID, userID, nil
}

func contentFromBody(body ContentBody) (pack.Content, error) {
	recipient, err := pack.NewRecipient(
		body.Recipient.Name, body.Recipient.Phone, body.Recipient.PicURL,
		body.Recipient.Twitter, body.Recipient.Facebook)
	if err != nil {
		return pack.Content{}, err
	}

	destinationPoint, err := kernel.NewGeoPoint(body.Destination.Latitude, body.Destination.Longitude)
	if err != nil {
		return pack.Content{}, err
	}
	destination, err := pack.NewDestination(body.Destination.Name, body.Destination.Address, destinationPoint)
	if err != nil {
		return pack.Content{}, err
	}

	// A missing ref starts a new topic under the given name.
	topicRef := kernel.NewUUID()
	if body.Topic.Ref != "" {
		topicRef, err = kernel.UUIDFromString(body.Topic.Ref)
		if err != nil {
			return pack.Content{}, err
		}
	}
	topicValue, err := pack.NewTopicRef(body.Topic.Name, topicRef)
	if err != nil {
		return pack.Content{}, err
	}

	actions := make([]pack.ExternalAction, 0, len(body.ExternalActions))
	for _, action := range body.ExternalActions {
		actions = append(actions, pack.ExternalAction{Title: action.Title, URL: action.URL})
	}

	return pack.NewContent(
		body.Category, body.Headline, body.Description, body.DueDate,
		recipient, destination, topicValue,
		body.CoverPicURL, body.DropoffMessage, actions)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	limit := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, errors.New("limit must be a positive integer")
		}
		limit = limit*10 + int(r-'0')
	}
	return limit, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps a handler failure onto the API's status codes: 404 for
// unknown objects, 409 for transaction conflicts that survived retrying,
// 422 for lifecycle rule violations, 504 when the request deadline expired
// and 500 for everything else.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case isRuleViolation(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func isRuleViolation(err error) bool {
	return errors.Is(err, pack.ErrDropoffNotCloserThanPickup) ||
		errors.Is(err, pack.ErrNotCurrentCourier) ||
		errors.Is(err, pack.ErrCourierAlreadyCarrying) ||
		errors.Is(err, account.ErrAlreadyCarryingPackage) ||
		errors.Is(err, transit.ErrRecordAlreadyDroppedOff) ||
		errors.Is(err, transit.ErrMovementDateOutOfOrder) ||
		errors.Is(err, errs.ErrValueIsInvalid)
}
