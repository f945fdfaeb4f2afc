package forum

// Actor identifies who performs an operation. The zero value is an
// anonymous visitor.
type Actor struct {
	UserID uint
}

var Anonymous = Actor{}

func AsUser(id uint) Actor {
	return Actor{UserID: id}
}

func (a Actor) Authenticated() bool {
	return a.UserID != 0
}
