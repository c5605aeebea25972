package subscribers_test

import (
	"context"
	"database/sql"
	"io"
	"mime/multipart"

	"github.com/goliatone/go-router"
	subscribers "github.com/goliatone/go-subscribers"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockSubscribers implements subscribers.Subscribers
type MockSubscribers struct {
	mock.Mock
}

func (m *MockSubscribers) Create(ctx context.Context, record *subscribers.Subscriber) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, record)
	return subscriberResult(args)
}

func (m *MockSubscribers) CreateTx(ctx context.Context, tx bun.IDB, record *subscribers.Subscriber) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, tx, record)
	return subscriberResult(args)
}

func (m *MockSubscribers) GetByID(ctx context.Context, id int64) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, id)
	return subscriberResult(args)
}

func (m *MockSubscribers) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, tx, id)
	return subscriberResult(args)
}

func (m *MockSubscribers) GetByEmail(ctx context.Context, email string) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, email)
	return subscriberResult(args)
}

func (m *MockSubscribers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, tx, email)
	return subscriberResult(args)
}

func (m *MockSubscribers) List(ctx context.Context) ([]*subscribers.Subscriber, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]*subscribers.Subscriber)
	return records, args.Error(1)
}

func (m *MockSubscribers) ListTx(ctx context.Context, tx bun.IDB) ([]*subscribers.Subscriber, error) {
	args := m.Called(ctx, tx)
	records, _ := args.Get(0).([]*subscribers.Subscriber)
	return records, args.Error(1)
}

func (m *MockSubscribers) Update(ctx context.Context, record *subscribers.Subscriber) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, record)
	return subscriberResult(args)
}

func (m *MockSubscribers) UpdateTx(ctx context.Context, tx bun.IDB, record *subscribers.Subscriber) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, tx, record)
	return subscriberResult(args)
}

func (m *MockSubscribers) Delete(ctx context.Context, id int64) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, id)
	return subscriberResult(args)
}

func (m *MockSubscribers) DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*subscribers.Subscriber, error) {
	args := m.Called(ctx, tx, id)
	return subscriberResult(args)
}

func subscriberResult(args mock.Arguments) (*subscribers.Subscriber, error) {
	record, _ := args.Get(0).(*subscribers.Subscriber)
	return record, args.Error(1)
}

// MockUsers implements subscribers.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) Create(ctx context.Context, record *subscribers.User) (*subscribers.User, error) {
	args := m.Called(ctx, record)
	return userResult(args)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *subscribers.User) (*subscribers.User, error) {
	args := m.Called(ctx, tx, record)
	return userResult(args)
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*subscribers.User, error) {
	args := m.Called(ctx, id)
	return userResult(args)
}

func (m *MockUsers) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*subscribers.User, error) {
	args := m.Called(ctx, tx, id)
	return userResult(args)
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*subscribers.User, error) {
	args := m.Called(ctx, username)
	return userResult(args)
}

func (m *MockUsers) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*subscribers.User, error) {
	args := m.Called(ctx, tx, username)
	return userResult(args)
}

func (m *MockUsers) List(ctx context.Context) ([]*subscribers.User, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]*subscribers.User)
	return records, args.Error(1)
}

func (m *MockUsers) ListTx(ctx context.Context, tx bun.IDB) ([]*subscribers.User, error) {
	args := m.Called(ctx, tx)
	records, _ := args.Get(0).([]*subscribers.User)
	return records, args.Error(1)
}

func (m *MockUsers) Update(ctx context.Context, record *subscribers.User) (*subscribers.User, error) {
	args := m.Called(ctx, record)
	return userResult(args)
}

func (m *MockUsers) UpdateTx(ctx context.Context, tx bun.IDB, record *subscribers.User) (*subscribers.User, error) {
	args := m.Called(ctx, tx, record)
	return userResult(args)
}

func (m *MockUsers) Delete(ctx context.Context, id int64) (*subscribers.User, error) {
	args := m.Called(ctx, id)
	return userResult(args)
}

func (m *MockUsers) DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*subscribers.User, error) {
	args := m.Called(ctx, tx, id)
	return userResult(args)
}

func userResult(args mock.Arguments) (*subscribers.User, error) {
	record, _ := args.Get(0).(*subscribers.User)
	return record, args.Error(1)
}

// stubRepoManager wires mock repositories behind the RepositoryManager
// interface. RunInTx executes the callback with a zero transaction; the
// mocked Tx methods never touch it.
type stubRepoManager struct {
	subs  subscribers.Subscribers
	users subscribers.Users
}

func (m stubRepoManager) Validate() error { return nil }

func (m stubRepoManager) MustValidate() {}

func (m stubRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m stubRepoManager) Subscribers() subscribers.Subscribers { return m.subs }

func (m stubRepoManager) Users() subscribers.Users { return m.users }

// stubConfig implements subscribers.Config
type stubConfig struct {
	realm      string
	contextKey string
}

func (c stubConfig) GetRealm() string {
	if c.realm == "" {
		return subscribers.DefaultRealm
	}
	return c.realm
}

func (c stubConfig) GetContextKey() string {
	if c.contextKey == "" {
		return subscribers.DefaultContextKey
	}
	return c.contextKey
}

// MockContext mocks the router.Context
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) QueryValues(key string) []string {
	args := m.Called(key)
	values, _ := args.Get(0).([]string)
	return values
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) LocalsMerge(key string, value map[string]any) map[string]any {
	args := m.Called(key, value)
	merged, _ := args.Get(0).(map[string]any)
	return merged
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}
