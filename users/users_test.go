package users_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/users"
	"github.com/stretchr/testify/require"
)

func TestUser_HasRole(t *testing.T) {
	user := &users.User{Roles: []users.RoleType{users.RoleTeacher, users.RoleDepartmentHead}}

	require.True(t, user.HasRole(users.RoleTeacher))
	require.False(t, user.HasRole(users.RoleAdmin))
	require.False(t, user.IsAdmin())

	var nobody *users.User
	require.False(t, nobody.HasRole(users.RoleUser))
}

func TestUser_FullName(t *testing.T) {
	require.Equal(t, "Ada Lovelace", (&users.User{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	require.Equal(t, "Ada", (&users.User{FirstName: "Ada"}).FullName())
	require.Equal(t, "Lovelace", (&users.User{LastName: "Lovelace"}).FullName())

	var nobody *users.User
	require.Equal(t, "", nobody.FullName())
}
