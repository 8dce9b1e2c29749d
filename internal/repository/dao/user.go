package dao

import "strconv"

// User is the shared record shape of organisers.dat and customers.dat.
type User struct {
	ID       int32
	Name     string
	Email    string
	Username string
	Password string
}

func (u User) Key() int32 { return u.ID }

func (u User) Field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(int(u.ID)), true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "username":
		return u.Username, true
	case "password":
		return u.Password, true
	}
	return "", false
}

type userRawV2 struct {
	ID       int32
	Name     [50]byte
	Email    [50]byte
	Username [20]byte
	Password [20]byte
}

type userRawV1 struct {
	ID       int32
	Name     [50]byte
	Email    [50]byte
	Username [20]byte
	Password [16]byte
}

var (
	userCodecV2 = newRawCodec(
		func(u User) userRawV2 {
			return userRawV2{
				ID:       u.ID,
				Name:     fixed50(u.Name),
				Email:    fixed50(u.Email),
				Username: fixed20(u.Username),
				Password: fixed20(u.Password),
			}
		},
		func(r *userRawV2) User {
			return User{
				ID:       r.ID,
				Name:     getString(r.Name[:]),
				Email:    getString(r.Email[:]),
				Username: getString(r.Username[:]),
				Password: getString(r.Password[:]),
			}
		},
	)
	userCodecV1 = newRawCodec(
		func(u User) userRawV1 {
			return userRawV1{
				ID:       u.ID,
				Name:     fixed50(u.Name),
				Email:    fixed50(u.Email),
				Username: fixed20(u.Username),
				Password: fixed16(u.Password),
			}
		},
		func(r *userRawV1) User {
			return User{
				ID:       r.ID,
				Name:     getString(r.Name[:]),
				Email:    getString(r.Email[:]),
				Username: getString(r.Username[:]),
				Password: getString(r.Password[:]),
			}
		},
	)
)

// UserCodec returns the organiser/customer codec for a layout.
func UserCodec(l Layout) Codec[User] {
	if l == LayoutV1 {
		return userCodecV1
	}
	return userCodecV2
}
