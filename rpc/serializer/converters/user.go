package converters

import (
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
)

// --------------------------------------------------------------------------
// Users & accounts
// --------------------------------------------------------------------------

func readUser(r wire.IReader) (*types.User, error) {
	return readObject(r, func(v *types.User, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "login":
			v.Login, err = wire.ReadString(r)
		case "password":
			v.Password, err = wire.ReadString(r)
		case "firstname":
			v.FirstName, err = wire.ReadString(r)
		case "lastname":
			v.LastName, err = wire.ReadString(r)
		case "mail":
			v.Email, err = wire.ReadString(r)
		case "admin":
			v.IsAdmin, err = wire.ReadBool(r)
		case "status":
			var status int
			status, err = wire.ReadInt(r)
			v.Status = types.UserStatus(status)
		case "auth_source_id":
			v.AuthenticationModeID, err = wire.ReadNullableInt(r)
		case "mail_notification":
			v.MailNotification, err = wire.ReadString(r)
		case "must_change_passwd":
			v.MustChangePassword, err = wire.ReadBool(r)
		case "generate_password":
			v.GeneratePassword, err = wire.ReadBool(r)
		case "twofa_scheme":
			v.TwoFactorScheme, err = wire.ReadString(r)
		case "api_key":
			v.APIKey, err = wire.ReadString(r)
		case "avatar_url":
			v.AvatarURL, err = wire.ReadString(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "updated_on":
			v.UpdatedOn, err = wire.ReadNullableDateTime(r)
		case "last_login_on":
			v.LastLoginOn, err = wire.ReadNullableDateTime(r)
		case "passwd_changed_on":
			v.PasswordChangedOn, err = wire.ReadNullableDateTime(r)
		case "custom_fields":
			v.CustomFields, err = readList(r, readIssueCustomField)
		case "memberships":
			v.Memberships, err = readList(r, readMembership)
		case "groups":
			v.Groups, err = readList(r, readRefAs[types.UserGroup])
		}
		return err
	})
}

func writeUser(w wire.IWriter, name string, v *types.User) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	w.Field("login", wire.String(v.Login))
	wire.WriteIfNotDefault(w, "password", v.Password, wire.String)
	w.Field("firstname", wire.String(v.FirstName))
	w.Field("lastname", wire.String(v.LastName))
	w.Field("mail", wire.String(v.Email))
	w.Field("admin", wire.Bool(v.IsAdmin))
	wire.WriteIfNotDefault(w, "status", v.Status, intOf[types.UserStatus])
	wire.WriteIfNotNil(w, "auth_source_id", v.AuthenticationModeID, wire.Int)
	wire.WriteIfNotDefault(w, "mail_notification", v.MailNotification, wire.String)
	w.Field("must_change_passwd", wire.Bool(v.MustChangePassword))
	w.Field("generate_password", wire.Bool(v.GeneratePassword))
	wire.WriteIfNotDefault(w, "twofa_scheme", v.TwoFactorScheme, wire.String)
	wire.WriteIfNotDefault(w, "api_key", v.APIKey, wire.String)
	wire.WriteIfNotDefault(w, "avatar_url", v.AvatarURL, wire.String)
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "updated_on", v.UpdatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "last_login_on", v.LastLoginOn, wire.DateTime)
	wire.WriteIfNotNil(w, "passwd_changed_on", v.PasswordChangedOn, wire.DateTime)
	writeList(w, "custom_fields", "custom_field", v.CustomFields, writeIssueCustomField)
	writeList(w, "memberships", "membership", v.Memberships, writeMembership)
	writeList(w, "groups", "group", v.Groups, writeRefAs[types.UserGroup])
	w.EndObject()
}

func readMyAccount(r wire.IReader) (*types.MyAccount, error) {
	return readObject(r, func(v *types.MyAccount, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "login":
			v.Login, err = wire.ReadString(r)
		case "admin":
			v.IsAdmin, err = wire.ReadBool(r)
		case "firstname":
			v.FirstName, err = wire.ReadString(r)
		case "lastname":
			v.LastName, err = wire.ReadString(r)
		case "mail":
			v.Email, err = wire.ReadString(r)
		case "created_on":
			v.CreatedOn, err = wire.ReadNullableDateTime(r)
		case "last_login_on":
			v.LastLoginOn, err = wire.ReadNullableDateTime(r)
		case "api_key":
			v.APIKey, err = wire.ReadString(r)
		case "custom_fields":
			v.CustomFields, err = readList(r, readMyAccountCustomField)
		}
		return err
	})
}

func writeMyAccount(w wire.IWriter, name string, v *types.MyAccount) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	wire.WriteIfNotDefault(w, "login", v.Login, wire.String)
	wire.WriteIfNotDefault(w, "admin", v.IsAdmin, wire.Bool)
	w.Field("firstname", wire.String(v.FirstName))
	w.Field("lastname", wire.String(v.LastName))
	w.Field("mail", wire.String(v.Email))
	wire.WriteIfNotNil(w, "created_on", v.CreatedOn, wire.DateTime)
	wire.WriteIfNotNil(w, "last_login_on", v.LastLoginOn, wire.DateTime)
	wire.WriteIfNotDefault(w, "api_key", v.APIKey, wire.String)
	writeList(w, "custom_fields", "custom_field", v.CustomFields, writeMyAccountCustomField)
	w.EndObject()
}

func readMyAccountCustomField(r wire.IReader) (*types.MyAccountCustomField, error) {
	return readObject(r, func(v *types.MyAccountCustomField, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "value":
			v.Value, err = wire.ReadString(r)
		}
		return err
	})
}

func writeMyAccountCustomField(w wire.IWriter, name string, v *types.MyAccountCustomField) {
	w.StartObject(name)
	w.Attr("id", wire.Int(v.ID))
	wire.WriteAttrIfNotDefault(w, "name", v.Name, wire.String)
	w.Field("value", wire.String(v.Value))
	w.EndObject()
}

// --------------------------------------------------------------------------
// Groups & roles
// --------------------------------------------------------------------------

func readGroup(r wire.IReader) (*types.Group, error) {
	return readObject(r, func(v *types.Group, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "users":
			v.Users, err = readList(r, readRefAs[types.GroupUser])
		case "custom_fields":
			v.CustomFields, err = readList(r, readIssueCustomField)
		case "memberships":
			v.Memberships, err = readList(r, readMembership)
		}
		return err
	})
}

func writeGroup(w wire.IWriter, name string, v *types.Group) {
	w.StartObject(name)
	wire.WriteIfNotDefault(w, "id", v.ID, wire.Int)
	w.Field("name", wire.String(v.Name))
	writeList(w, "users", "user", v.Users, writeRefAs[types.GroupUser])
	writeList(w, "custom_fields", "custom_field", v.CustomFields, writeIssueCustomField)
	writeList(w, "memberships", "membership", v.Memberships, writeMembership)
	if len(v.Users) > 0 {
		ids := make([]int, 0, len(v.Users))
		for _, user := range v.Users {
			ids = append(ids, user.ID)
		}
		writeInts(w, "user_ids", "user_id", ids)
	}
	w.EndObject()
}

func readRole(r wire.IReader) (*types.Role, error) {
	return readObject(r, func(v *types.Role, field string) (err error) {
		switch field {
		case "id":
			v.ID, err = wire.ReadInt(r)
		case "name":
			v.Name, err = wire.ReadString(r)
		case "assignable":
			v.IsAssignable, err = wire.ReadNullableBool(r)
		case "issues_visibility":
			v.IssuesVisibility, err = wire.ReadString(r)
		case "time_entries_visibility":
			v.TimeEntriesVisibility, err = wire.ReadString(r)
		case "users_visibility":
			v.UsersVisibility, err = wire.ReadString(r)
		case "permissions":
			v.Permissions, err = readList(r, readPermission)
		}
		return err
	})
}

func writeRole(w wire.IWriter, name string, v *types.Role) {
	w.StartObject(name)
	w.Field("id", wire.Int(v.ID))
	wire.WriteIfNotDefault(w, "name", v.Name, wire.String)
	wire.WriteIfNotNil(w, "assignable", v.IsAssignable, wire.Bool)
	wire.WriteIfNotDefault(w, "issues_visibility", v.IssuesVisibility, wire.String)
	wire.WriteIfNotDefault(w, "time_entries_visibility", v.TimeEntriesVisibility, wire.String)
	wire.WriteIfNotDefault(w, "users_visibility", v.UsersVisibility, wire.String)
	writeList(w, "permissions", "permission", v.Permissions, writePermission)
	w.EndObject()
}

func readPermission(r wire.IReader) (*types.Permission, error) {
	return readText(r, func(s string) types.Permission {
		return types.Permission{Info: s}
	})
}

func writePermission(w wire.IWriter, name string, v *types.Permission) {
	w.Field(name, wire.String(v.Info))
}
