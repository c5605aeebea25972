package subscribers

// Action is one of the closed set of operations the service exposes. Each
// action carries a fixed minimum authority; a negative value means the
// action is open to unauthenticated callers.
type Action int

const (
	// ActionCreateSubscriber is the public signup action.
	ActionCreateSubscriber Action = iota
	// ActionReadSubscriber covers both list and by-id reads.
	ActionReadSubscriber
	ActionUpdateSubscriber
	ActionDeleteSubscriber
	ActionReadUser
	ActionUpdateUser
	ActionCreateUser
	ActionDeleteUser
)

// requiredAuthorities is process-wide constant configuration. It is never
// mutated at runtime.
var requiredAuthorities = map[Action]int16{
	ActionCreateSubscriber: -1,
	ActionReadSubscriber:   50,
	ActionUpdateSubscriber: 51,
	ActionDeleteSubscriber: 52,
	ActionReadUser:         70,
	ActionUpdateUser:       71,
	ActionCreateUser:       72,
	ActionDeleteUser:       73,
}

var actionNames = map[Action]string{
	ActionCreateSubscriber: "subscriber.create",
	ActionReadSubscriber:   "subscriber.read",
	ActionUpdateSubscriber: "subscriber.update",
	ActionDeleteSubscriber: "subscriber.delete",
	ActionReadUser:         "user.read",
	ActionUpdateUser:       "user.update",
	ActionCreateUser:       "user.create",
	ActionDeleteUser:       "user.delete",
}

// String returns the action's wire name, e.g. "subscriber.create".
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// RequiredAuthority returns the minimum authority an account needs to
// perform the action.
func RequiredAuthority(action Action) int16 {
	return requiredAuthorities[action]
}

// MaxAuthority returns the largest authority bound to any action. Seed
// accounts provisioned with this value can perform every action.
func MaxAuthority() int16 {
	var max int16
	for _, authority := range requiredAuthorities {
		if authority > max {
			max = authority
		}
	}
	return max
}

// CanPerform reports whether the user clears the action's authority bar.
// A nil user can only perform actions with a negative required authority.
func CanPerform(user *User, action Action) bool {
	required := RequiredAuthority(action)
	if required < 0 {
		return true
	}

	if user == nil {
		return false
	}

	return user.Authority >= required
}

// AllActions returns every action in the closed set.
func AllActions() []Action {
	return []Action{
		ActionCreateSubscriber,
		ActionReadSubscriber,
		ActionUpdateSubscriber,
		ActionDeleteSubscriber,
		ActionReadUser,
		ActionUpdateUser,
		ActionCreateUser,
		ActionDeleteUser,
	}
}
