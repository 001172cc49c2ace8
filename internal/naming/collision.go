package naming

import "sync"

// CollisionResolver tracks which input owns each output path. Inputs that
// share a stem (intro.mov, intro.webm) map to the same outputs; the first
// to claim them wins and later inputs are told who owns them. All methods
// are goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // output path → input path that owns it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{owners: make(map[string]string)}
}

// Claim registers input as the owner of every path in out. It returns
// ok=true when all paths were free or already owned by input. Otherwise
// nothing is registered and owner names the input holding the first
// conflicting path.
func (cr *CollisionResolver) Claim(input string, out Outputs) (owner string, ok bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	paths := [...]string{out.Video, out.Poster}
	for _, p := range paths {
		if o, exists := cr.owners[p]; exists && o != input {
			return o, false
		}
	}
	for _, p := range paths {
		cr.owners[p] = input
	}
	return input, true
}
