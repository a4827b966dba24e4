package chat

// Session binds one live connection to the user and room it joined.
type Session struct {
	ConnID   string
	Username string
	Room     string
}

type binding struct {
	username string
	room     string
}

// Directory maps connection ids to their current Session.
// Like Presence, it is not safe for concurrent use on its own.
type Directory struct {
	sessions map[string]Session

	// counts tracks how many connections are bound to each (username, room) pair.
	counts map[binding]int
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		sessions: make(map[string]Session),
		counts:   make(map[binding]int),
	}
}

// Bind records the session for connID, replacing any previous one.
func (d *Directory) Bind(connID, username, room string) Session {
	d.Unbind(connID)

	s := Session{ConnID: connID, Username: username, Room: room}
	d.sessions[connID] = s
	d.counts[binding{username, room}]++
	return s
}

// Lookup returns the session bound to connID.
func (d *Directory) Lookup(connID string) (Session, bool) {
	s, ok := d.sessions[connID]
	return s, ok
}

// Unbind forgets connID. Unknown ids are ignored.
func (d *Directory) Unbind(connID string) {
	s, ok := d.sessions[connID]
	if !ok {
		return
	}
	delete(d.sessions, connID)

	key := binding{s.Username, s.Room}
	if d.counts[key] <= 1 {
		delete(d.counts, key)
		return
	}
	d.counts[key]--
}

// Bound counts the connections bound to username in room.
func (d *Directory) Bound(username, room string) int {
	return d.counts[binding{username, room}]
}

// Len returns the number of bound sessions.
func (d *Directory) Len() int {
	return len(d.sessions)
}
