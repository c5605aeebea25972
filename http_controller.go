package subscribers

import (
	"errors"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterSubscriberRoutes mounts the subscriber CRUD surface. Signup is
// public; every other route runs behind the Basic auth middleware.
func RegisterSubscriberRoutes[T any](app router.Router[T], opts ...SubscriberControllerOption) {
	controller := NewSubscriberController(opts...)

	protected := controller.Authorizer.Protected()

	app.Post("/subscriber", controller.Create).
		SetName("subscriber.create")

	app.Get("/subscriber", controller.Index, protected).
		SetName("subscriber.index")

	app.Get("/subscriber/:id", controller.Show, protected).
		SetName("subscriber.show")

	app.Put("/subscriber/:id", controller.Update, protected).
		SetName("subscriber.update")

	app.Delete("/subscriber/:id", controller.Delete, protected).
		SetName("subscriber.delete")
}

// RegisterUserRoutes mounts the operator account surface. Everything here
// is protected.
func RegisterUserRoutes[T any](app router.Router[T], opts ...UserControllerOption) {
	controller := NewUserController(opts...)

	protected := controller.Authorizer.Protected()

	app.Get("/user", controller.Index, protected).
		SetName("user.index")

	app.Get("/user/:id", controller.Show, protected).
		SetName("user.show")

	app.Post("/user", controller.Create, protected).
		SetName("user.create")

	app.Put("/user/:id", controller.Update, protected).
		SetName("user.update")

	app.Delete("/user/:id", controller.Delete, protected).
		SetName("user.delete")
}

type SubscriberController struct {
	Debug      bool
	Logger     Logger
	Service    *SubscriberService
	Authorizer *RouteAuthorizer
}

type SubscriberControllerOption func(*SubscriberController) *SubscriberController

func NewSubscriberController(opts ...SubscriberControllerOption) *SubscriberController {
	c := &SubscriberController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing SubscriberService in subscriber controller...")
	}

	if c.Authorizer == nil {
		panic("Missing RouteAuthorizer in subscriber controller...")
	}

	return c
}

func WithSubscriberService(s *SubscriberService) SubscriberControllerOption {
	return func(c *SubscriberController) *SubscriberController {
		c.Service = s
		return c
	}
}

func WithSubscriberAuthorizer(a *RouteAuthorizer) SubscriberControllerOption {
	return func(c *SubscriberController) *SubscriberController {
		c.Authorizer = a
		return c
	}
}

// SubscriberPayload is the signup/update body
type SubscriberPayload struct {
	Email string `form:"email" json:"email"`
	Name  string `form:"name" json:"name"`
}

// Validate will run validation rules
func (r SubscriberPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Name,
			validation.Length(0, 200),
		),
	)
}

func (a *SubscriberController) Create(ctx router.Context) error {
	payload := new(SubscriberPayload)

	if err := ctx.Bind(payload); err != nil {
		return a.Authorizer.ErrorHandler(ctx, validationError("unable to parse body", "invalid_body"))
	}

	if err := payload.Validate(); err != nil {
		return a.Authorizer.ErrorHandler(ctx, validationError(err.Error(), "invalid_email"))
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	record, err := a.Service.Create(ctx.Context(), payload.Email, payload.Name)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *SubscriberController) Index(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	records, err := a.Service.List(ctx.Context(), requester)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *SubscriberController) Show(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	id, err := paramID(ctx)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	record, err := a.Service.Get(ctx.Context(), requester, id)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *SubscriberController) Update(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	id, err := paramID(ctx)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	payload := new(SubscriberPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.Authorizer.ErrorHandler(ctx, validationError("unable to parse body", "invalid_body"))
	}

	if err := payload.Validate(); err != nil {
		return a.Authorizer.ErrorHandler(ctx, validationError(err.Error(), "invalid_email"))
	}

	record, err := a.Service.Update(ctx.Context(), requester, id, payload.Email, payload.Name)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *SubscriberController) Delete(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	id, err := paramID(ctx)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	record, err := a.Service.Delete(ctx.Context(), requester, id)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

type UserController struct {
	Debug      bool
	Logger     Logger
	Service    *UserService
	Authorizer *RouteAuthorizer
}

type UserControllerOption func(*UserController) *UserController

func NewUserController(opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing UserService in user controller...")
	}

	if c.Authorizer == nil {
		panic("Missing RouteAuthorizer in user controller...")
	}

	return c
}

func WithUserService(s *UserService) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Service = s
		return c
	}
}

func WithUserAuthorizer(a *RouteAuthorizer) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Authorizer = a
		return c
	}
}

// CreateUserPayload is the account creation body
type CreateUserPayload struct {
	Username        string `form:"username" json:"username"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
	Authority       *int16 `form:"authority" json:"authority"`
}

// Validate will validate the payload
func (r CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(PasswordMinLength, PasswordMaxLength)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

// UpdateUserPayload is the partial account update body
type UpdateUserPayload struct {
	Username  *string `form:"username" json:"username"`
	Password  *string `form:"password" json:"password"`
	Authority *int16  `form:"authority" json:"authority"`
}

func (a *UserController) Index(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	records, err := a.Service.List(ctx.Context(), requester)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

func (a *UserController) Show(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	id, err := paramID(ctx)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	record, err := a.Service.Get(ctx.Context(), requester, id)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *UserController) Create(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	payload := new(CreateUserPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.Authorizer.ErrorHandler(ctx, validationError("unable to parse body", "invalid_body"))
	}

	if err := payload.Validate(); err != nil {
		return a.Authorizer.ErrorHandler(ctx, validationError(err.Error(), "invalid_user_payload"))
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload.Username))
	}

	record, err := a.Service.Create(ctx.Context(), requester, CreateUserMessage{
		Username:        payload.Username,
		Password:        payload.Password,
		ConfirmPassword: payload.ConfirmPassword,
		Authority:       payload.Authority,
	})
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *UserController) Update(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	id, err := paramID(ctx)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	payload := new(UpdateUserPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.Authorizer.ErrorHandler(ctx, validationError("unable to parse body", "invalid_body"))
	}

	record, err := a.Service.Update(ctx.Context(), requester, id, UserPatch{
		Username:  payload.Username,
		Password:  payload.Password,
		Authority: payload.Authority,
	})
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (a *UserController) Delete(ctx router.Context) error {
	requester, _ := a.Authorizer.Principal(ctx)

	id, err := paramID(ctx)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	record, err := a.Service.Delete(ctx.Context(), requester, id)
	if err != nil {
		return a.Authorizer.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}

func paramID(ctx router.Context) (int64, error) {
	raw := ctx.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validationError("invalid id parameter", "invalid_id")
	}

	return id, nil
}
