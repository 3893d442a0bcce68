package models

// User is an account record. Password holds the bcrypt hash; omitempty keeps
// it out of API payloads once a copy has been sanitized, while the data file
// still carries it.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Img      string `json:"img"`
	Status   string `json:"status"`
}

// Sanitized returns a copy safe to hand outside the store.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// Message is a direct message between two users. CreatedAt is Unix
// milliseconds. Readed flips false->true exactly once.
type Message struct {
	ID         string `json:"id"`
	SenderID   int    `json:"senderId"`
	ReceiverID int    `json:"receiverId"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"createdAt"`
	Readed     bool   `json:"readed"`
}

// InChat reports whether the message belongs to the conversation between
// id1 and id2, regardless of direction.
func (m Message) InChat(id1, id2 int) bool {
	return (m.SenderID == id1 && m.ReceiverID == id2) ||
		(m.SenderID == id2 && m.ReceiverID == id1)
}

type Post struct {
	ID        int    `json:"id"`
	WallID    int    `json:"wallId"`
	UserID    int    `json:"userId"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
}

type Like struct {
	UserID    int   `json:"userId"`
	PostID    int   `json:"postId"`
	CreatedAt int64 `json:"createdAt"`
}

// FriendPair is an established friendship, stored as the ordered pair
// [min, max] so the relation is direction-free.
type FriendPair [2]int

type Request struct {
	FromID    int   `json:"fromId"`
	ToID      int   `json:"toId"`
	CreatedAt int64 `json:"createdAt"`
}
