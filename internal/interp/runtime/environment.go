package runtime

// Variable is a named binding: a declared type plus whatever Value it
// currently holds (possibly a *LazyValue awaiting a force).
type Variable struct {
	Name         string
	DeclaredType string
	Value        Value
}

// Block is one lexical scope: a flat map of names to their Variable
// cells. Blocks are introduced by function entry, if/for bodies, and
// try/catch bodies.
type Block map[string]*Variable

func newBlock() Block { return make(Block) }

func cloneBlock(b Block) Block {
	c := make(Block, len(b))
	for k, v := range b {
		c[k] = v // Variable cells are shared, only the block map is copied.
	}
	return c
}

// Environment is the per-interpreter symbol table: a stack of function
// activations, each itself a stack of nested blocks. Name resolution
// for get/set only ever searches within the current (topmost)
// activation: no lookup ever crosses into an enclosing function's
// scope, since Brewin has no closures over outer function locals.
type Environment struct {
	activations []Activation
}

// Activation is the per-call record: a stack of lexical blocks.
type Activation []Block

// NewEnvironment creates an empty Environment with no active function
// call. Callers must PushFunc before Create/Get/Set.
func NewEnvironment() *Environment {
	return &Environment{}
}

// PushFunc begins a new call activation. If captured is non-nil, it is
// installed verbatim as the new activation's blocks (used when forcing
// a lazy value or invoking a function with arguments bound to the
// caller's captured environment); otherwise the activation starts with
// a single empty block.
func (e *Environment) PushFunc(captured Activation) {
	if captured != nil {
		e.activations = append(e.activations, captured)
		return
	}
	e.activations = append(e.activations, Activation{newBlock()})
}

// PopFunc discards the current activation.
func (e *Environment) PopFunc() {
	e.activations = e.activations[:len(e.activations)-1]
}

func (e *Environment) current() Activation {
	return e.activations[len(e.activations)-1]
}

// PushBlock opens a new nested lexical block within the current
// activation.
func (e *Environment) PushBlock() {
	act := e.current()
	e.activations[len(e.activations)-1] = append(act, newBlock())
}

// PopBlock closes the innermost lexical block of the current
// activation.
func (e *Environment) PopBlock() {
	act := e.current()
	e.activations[len(e.activations)-1] = act[:len(act)-1]
}

// BlockDepth reports how many blocks are open in the current
// activation, for invariant checks in tests.
func (e *Environment) BlockDepth() int {
	return len(e.current())
}

// Create declares name in the innermost block of the current
// activation. It reports false if name is already present in that
// block (a name error at the call site).
func (e *Environment) Create(name string, v *Variable) bool {
	act := e.current()
	innermost := act[len(act)-1]
	if _, exists := innermost[name]; exists {
		return false
	}
	innermost[name] = v
	return true
}

// Get searches the current activation's blocks from innermost to
// outermost, never crossing into an enclosing function's activation.
func (e *Environment) Get(name string) (*Variable, bool) {
	act := e.current()
	for i := len(act) - 1; i >= 0; i-- {
		if v, ok := act[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set assigns val to the Variable named name, searching the current
// activation inner-to-outer. It reports false if name is not bound
// anywhere in the current activation.
func (e *Environment) Set(name string, val Value) bool {
	v, ok := e.Get(name)
	if !ok {
		return false
	}
	v.Value = val
	return true
}

// SnapshotCurrent returns a capture of the current activation suitable
// for a thunk to close over: the block list and each block map are
// freshly allocated so later pushes/pops in the live environment never
// disturb the snapshot, while Variable cells themselves are shared (so
// mutations through the live environment remain visible to the thunk).
func (e *Environment) SnapshotCurrent() Activation {
	act := e.current()
	snap := make(Activation, len(act))
	for i, b := range act {
		snap[i] = cloneBlock(b)
	}
	return snap
}
