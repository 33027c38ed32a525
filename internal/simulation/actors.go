package simulation

// ActorId uniquely identifies an Actor within a single Game. Ids are issued
// by an Actors registry's monotonic counter and are never reused within
// that Game's lineage.
type ActorId = uint32

// Actors maps ActorId to Actor. Iteration order is never observable
// externally: advance and interact must each produce a result that depends
// only on the previous registry's content, not the order it is walked in.
type Actors struct {
	byID  map[ActorId]Actor
	count ActorId
}

// NewActors returns an empty registry with a zeroed id counter.
func NewActors() *Actors {
	return &Actors{byID: make(map[ActorId]Actor)}
}

// NewActorsWithCount returns an empty registry whose id counter starts at
// count, for reconstructing a registry from a decoded wire snapshot where
// the counter may exceed every currently-live id.
func NewActorsWithCount(count ActorId) *Actors {
	return &Actors{byID: make(map[ActorId]Actor), count: count}
}

// PrepareNew returns an empty registry that carries over old's id counter,
// so ids issued against the new registry never collide with ids already
// live in old.
func PrepareNew(old *Actors) *Actors {
	return &Actors{byID: make(map[ActorId]Actor, len(old.byID)), count: old.count}
}

// Add allocates a fresh ActorId, stores actor under it, and returns the id.
func (a *Actors) Add(actor Actor) ActorId {
	id := a.count
	a.count++
	a.byID[id] = actor
	return id
}

// Insert stores actor under the given id, advancing the counter if needed
// so future Add calls never reuse it.
func (a *Actors) Insert(id ActorId, actor Actor) {
	a.byID[id] = actor
	if id >= a.count {
		a.count = id + 1
	}
}

// Get returns the actor stored under id, if any.
func (a *Actors) Get(id ActorId) (Actor, bool) {
	actor, ok := a.byID[id]
	return actor, ok
}

// Remove deletes the actor stored under id, if any.
func (a *Actors) Remove(id ActorId) {
	delete(a.byID, id)
}

// Len returns the number of live actors.
func (a *Actors) Len() int {
	return len(a.byID)
}

// Count returns the next id that Add would allocate.
func (a *Actors) Count() ActorId {
	return a.count
}

// Keys returns the set of live actor ids in no particular order.
func (a *Actors) Keys() []ActorId {
	keys := make([]ActorId, 0, len(a.byID))
	for id := range a.byID {
		keys = append(keys, id)
	}
	return keys
}

// Values returns the set of live actors in no particular order.
func (a *Actors) Values() []Actor {
	values := make([]Actor, 0, len(a.byID))
	for _, actor := range a.byID {
		values = append(values, actor)
	}
	return values
}

// Each invokes fn for every (id, actor) pair currently stored.
func (a *Actors) Each(fn func(id ActorId, actor Actor)) {
	for id, actor := range a.byID {
		fn(id, actor)
	}
}
