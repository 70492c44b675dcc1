package wsstream

// roleKind tags the four masking behaviors a [Stream] can be
// constructed with (spec.md §3, §9's "Role as a capability set").
type roleKind uint8

const (
	// RoleClient masks outbound frames with [SkipMask]: the protocol's
	// "clients must mask" rule is satisfied by the mask bit alone,
	// without paying for an XOR pass over the payload.
	RoleClient roleKind = iota
	// RoleStandardClient masks outbound frames with a key refreshed to
	// a new random value before every frame.
	RoleStandardClient
	// RoleFixedMaskClient masks outbound frames with a key chosen once
	// and held fixed for the session.
	RoleFixedMaskClient
	// RoleServer never masks outbound frames.
	RoleServer
)

// Role carries a Stream's masking behavior: what mask to stamp on a
// freshly synthesised outbound frame head, and whether the engine may
// XOR the caller's write buffer in place to auto-mask it.
type Role struct {
	kind roleKind
	key  [4]byte
}

// NewClientRole returns the [RoleClient] capability: mask bit set,
// zero key, no XOR ever performed on outbound payload.
func NewClientRole() Role { return Role{kind: RoleClient} }

// NewStandardClientRole returns the [RoleStandardClient] capability
// seeded with an initial random key. The key is refreshed before every
// subsequent frame written with auto-masking enabled.
func NewStandardClientRole() Role {
	return Role{kind: RoleStandardClient, key: NewMaskKey()}
}

// NewFixedMaskClientRole returns the [RoleFixedMaskClient] capability
// with key held fixed for the session.
func NewFixedMaskClientRole(key [4]byte) Role {
	return Role{kind: RoleFixedMaskClient, key: key}
}

// NewServerRole returns the [RoleServer] capability: outbound frames
// are never masked.
func NewServerRole() Role { return Role{kind: RoleServer} }

// Kind reports which of the four role capabilities r is.
func (r Role) Kind() roleKind { return r.kind }

// IsServer reports whether r is the server role.
func (r Role) IsServer() bool { return r.kind == RoleServer }

// WriteMask returns the [Mask] to stamp on a newly synthesised
// outbound frame head.
func (r Role) WriteMask() Mask {
	switch r.kind {
	case RoleClient:
		return SkipMask
	case RoleStandardClient, RoleFixedMaskClient:
		return NewKeyMask(r.key)
	default: // RoleServer
		return NoMask
	}
}

// autoMasks reports whether the engine is allowed to XOR an outbound
// payload buffer in place for this role. Only the two keyed client
// roles ever do; [RoleClient] has nothing to XOR (its key is all
// zeros) and [RoleServer] must never mask.
func (r Role) autoMasks() bool {
	return r.kind == RoleStandardClient || r.kind == RoleFixedMaskClient
}

// refreshesKey reports whether the mask key should be regenerated
// before each frame (true only for [RoleStandardClient]).
func (r Role) refreshesKey() bool {
	return r.kind == RoleStandardClient
}

// setKey installs a new mask key, used by [Stream.SetMaskKey] and by
// the write path's automatic per-frame refresh.
func (r *Role) setKey(key [4]byte) { r.key = key }

// MinFrameHeadLen returns the smallest possible frame head length for
// this role: 2 bytes base, plus 4 if the role ever masks (a client
// role always sets the mask bit, even [RoleClient]'s all-zero one).
func (r Role) MinFrameHeadLen() int {
	if r.kind == RoleServer {
		return 2
	}
	return 2 + 4
}
