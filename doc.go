// Package subscribers implements a small admin backend for mailing-list
// subscribers and the operator accounts that manage them.
//
// Access model:
//   - Operators authenticate with HTTP Basic credentials; UserProvider resolves
//     them to persisted accounts and RouteAuthorizer turns the result into
//     router middleware.
//   - Every protected operation is gated by a numeric authority level. CanPerform
//     compares the caller's authority against the per-action requirement, and
//     user management additionally refuses to touch accounts that outrank the
//     caller.
//
// Persistence:
//   - Subscribers and Users are Bun models backed by embedded goose migrations
//     for both postgres and sqlite. RepositoryManager bundles both repositories
//     and exposes RunInTx for multi-step writes.
package subscribers
