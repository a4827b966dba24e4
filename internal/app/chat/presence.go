package chat

// occupancy is the ordered username set of one room.
type occupancy struct {
	order []string
	index map[string]struct{}
}

// Presence maps each occupied room to its members.
// Rooms without members have no entry. Presence does no locking; the Manager serializes access.
type Presence struct {
	rooms map[string]*occupancy
}

// NewPresence returns an empty presence table.
func NewPresence() *Presence {
	return &Presence{rooms: make(map[string]*occupancy)}
}

// Join adds username to room. Joining twice is a no-op.
func (p *Presence) Join(room, username string) {
	occ, ok := p.rooms[room]
	if !ok {
		occ = &occupancy{index: make(map[string]struct{})}
		p.rooms[room] = occ
	}

	if _, in := occ.index[username]; in {
		return
	}
	occ.index[username] = struct{}{}
	occ.order = append(occ.order, username)
}

// Leave removes username from room and drops the room entry once it is empty.
func (p *Presence) Leave(room, username string) {
	occ, ok := p.rooms[room]
	if !ok {
		return
	}
	if _, in := occ.index[username]; !in {
		return
	}

	delete(occ.index, username)
	for i, name := range occ.order {
		if name == username {
			occ.order = append(occ.order[:i], occ.order[i+1:]...)
			break
		}
	}

	if len(occ.order) == 0 {
		delete(p.rooms, room)
	}
}

// Members returns a copy of the room's members in join order.
// The result is never nil.
func (p *Presence) Members(room string) []string {
	occ, ok := p.rooms[room]
	if !ok {
		return []string{}
	}
	return append(make([]string, 0, len(occ.order)), occ.order...)
}

// Has reports whether username is in room.
func (p *Presence) Has(room, username string) bool {
	occ, ok := p.rooms[room]
	if !ok {
		return false
	}
	_, in := occ.index[username]
	return in
}

// Rooms returns the number of occupied rooms.
func (p *Presence) Rooms() int {
	return len(p.rooms)
}
