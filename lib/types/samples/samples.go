package samples

import (
	"time"

	"github.com/ValentinKolb/redmine/lib/types"
)

// Every fixture is fully populated with values that survive a write/read cycle
// in both wire formats: UTC timestamps with second precision, dates at midnight
// UTC and no empty collections.

var (
	created = time.Date(2024, 2, 12, 9, 30, 15, 0, time.UTC)
	updated = time.Date(2024, 3, 1, 17, 4, 59, 0, time.UTC)
	closed  = time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	start   = time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	due     = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T {
	return &v
}

func ref(id int, name string) *types.IdentifiableName {
	return types.NewIdentifiableName(id, name)
}

// --------------------------------------------------------------------------
// Issues
// --------------------------------------------------------------------------

func Issue() *types.Issue {
	return &types.Issue{
		ID:           380,
		Project:      ref(1, "Redmine"),
		Tracker:      ref(1, "Bug"),
		Status:       &types.IssueStatus{ID: 2, Name: "In Progress"},
		Priority:     ref(4, "Normal"),
		Author:       ref(3, "John Smith"),
		Category:     ref(7, "Backend"),
		FixedVersion: ref(12, "5.1.0"),
		AssignedTo:   ref(5, "Jane Doe"),
		Parent:       types.NewReference(377),
		Subject:      "Crash when <saving> a \"draft\" & reloading",
		Description:  "Steps:\n1. open\n2. save",
		StartDate:    ptr(start),
		DueDate:      ptr(due),
		DoneRatio:    ptr(40),
		IsPrivate:    true,

		EstimatedHours:      ptr(8.5),
		TotalEstimatedHours: ptr(12.25),
		SpentHours:          ptr(3.0),
		TotalSpentHours:     ptr(4.75),

		CustomFields: IssueCustomFields(),
		CreatedOn:    ptr(created),
		UpdatedOn:    ptr(updated),
		ClosedOn:     ptr(closed),

		Notes:        "Fixed in r1234",
		PrivateNotes: true,
		Uploads:      []types.Upload{*Upload()},

		Journals:        []types.Journal{*Journal()},
		ChangeSets:      []types.ChangeSet{*ChangeSet()},
		Attachments:     []types.Attachment{*Attachment()},
		Relations:       []types.IssueRelation{*IssueRelation()},
		Children:        []types.IssueChild{*IssueChild()},
		Watchers:        []types.Watcher{{ID: 91, Name: "Normal User"}, {ID: 90, Name: "Admin User"}},
		AllowedStatuses: []types.IssueAllowedStatus{*IssueAllowedStatus(), {ID: 5, Name: "Closed", IsClosed: true}},
	}
}

func IssueChild() *types.IssueChild {
	return &types.IssueChild{
		ID:      381,
		Tracker: ref(2, "Feature"),
		Subject: "Sub task",
		Children: []types.IssueChild{
			{ID: 382, Tracker: ref(2, "Feature"), Subject: "Sub sub task"},
		},
	}
}

func IssueRelation() *types.IssueRelation {
	return &types.IssueRelation{ID: 17, IssueID: 380, IssueToID: 390, Type: types.RelationPrecedes, Delay: ptr(2)}
}

func IssueCustomFields() []types.IssueCustomField {
	return []types.IssueCustomField{
		*IssueCustomField(),
		{ID: 2, Name: "Platforms", Multiple: true, Values: []types.CustomFieldValue{{Info: "Linux"}, {Info: "Windows"}}},
	}
}

func IssueCustomField() *types.IssueCustomField {
	return &types.IssueCustomField{ID: 1, Name: "Affected version", Values: []types.CustomFieldValue{*CustomFieldValue()}}
}

func CustomFieldValue() *types.CustomFieldValue {
	return &types.CustomFieldValue{Info: "5.0.4"}
}

func IssueAllowedStatus() *types.IssueAllowedStatus {
	return &types.IssueAllowedStatus{ID: 1, Name: "New"}
}

func Journal() *types.Journal {
	return &types.Journal{
		ID:           1044,
		User:         ref(5, "Jane Doe"),
		Notes:        "Status changed",
		CreatedOn:    ptr(created),
		UpdatedOn:    ptr(updated),
		UpdatedBy:    ref(3, "John Smith"),
		PrivateNotes: true,
		Details:      []types.Detail{*Detail(), {Property: "cf", Name: "1", NewValue: "5.0.4"}},
	}
}

func Detail() *types.Detail {
	return &types.Detail{Property: "attr", Name: "status_id", OldValue: "1", NewValue: "2"}
}

func ChangeSet() *types.ChangeSet {
	return &types.ChangeSet{Revision: "a1b2c3d", User: ref(5, "Jane Doe"), Comments: "Fix crash, refs #380", CommittedOn: ptr(updated)}
}

func Attachment() *types.Attachment {
	return &types.Attachment{
		ID:           66,
		FileName:     "trace.log",
		FileSize:     20480,
		ContentType:  "text/plain",
		Description:  "Stack trace",
		ContentURL:   "https://redmine.example.com/attachments/download/66/trace.log",
		ThumbnailURL: "https://redmine.example.com/attachments/thumbnail/66",
		Author:       ref(3, "John Smith"),
		CreatedOn:    ptr(created),
	}
}

func Upload() *types.Upload {
	return &types.Upload{ID: 8, Token: "8.7b5a0c1d", FileName: "screenshot.png", ContentType: "image/png", Description: "Screenshot"}
}

// --------------------------------------------------------------------------
// Projects
// --------------------------------------------------------------------------

func Project() *types.Project {
	return &types.Project{
		ID:              1,
		Name:            "Redmine",
		Identifier:      "redmine",
		Description:     "Flexible project management",
		Homepage:        "https://redmine.example.com",
		Parent:          ref(9, "Products"),
		Status:          types.ProjectStatusActive,
		IsPublic:        true,
		InheritMembers:  true,
		DefaultVersion:  ref(12, "5.1.0"),
		DefaultAssignee: ref(5, "Jane Doe"),
		CreatedOn:       ptr(created),
		UpdatedOn:       ptr(updated),

		Trackers:            []types.ProjectTracker{{ID: 1, Name: "Bug"}, {ID: 2, Name: "Feature"}},
		IssueCategories:     []types.ProjectIssueCategory{{ID: 7, Name: "Backend"}},
		TimeEntryActivities: []types.ProjectTimeEntryActivity{{ID: 9, Name: "Development"}},
		EnabledModules:      []types.ProjectEnabledModule{{ID: 21, Name: "issue_tracking"}, {ID: 22, Name: "wiki"}},
		IssueCustomFields:   []types.IssueCustomField{{ID: 1, Name: "Affected version"}},
		CustomFields:        []types.IssueCustomField{{ID: 4, Name: "Budget", Values: []types.CustomFieldValue{{Info: "1000"}}}},
	}
}

func ProjectMembership() *types.ProjectMembership {
	return &types.ProjectMembership{
		ID:      31,
		Project: ref(1, "Redmine"),
		User:    ref(5, "Jane Doe"),
		Roles:   []types.MembershipRole{*MembershipRole(), {ID: 4, Name: "Developer", Inherited: true}},
	}
}

func Membership() *types.Membership {
	return &types.Membership{ID: 32, Project: ref(1, "Redmine"), Roles: []types.MembershipRole{*MembershipRole()}}
}

func MembershipRole() *types.MembershipRole {
	return &types.MembershipRole{ID: 3, Name: "Manager"}
}

func IssueCategory() *types.IssueCategory {
	return &types.IssueCategory{ID: 7, Project: ref(1, "Redmine"), AssignedTo: ref(5, "Jane Doe"), Name: "Backend"}
}

func Version() *types.Version {
	return &types.Version{
		ID:             12,
		Project:        ref(1, "Redmine"),
		Name:           "5.1.0",
		Description:    "Feature release",
		Status:         types.VersionOpen,
		DueDate:        ptr(due),
		Sharing:        types.SharingDescendants,
		WikiPageTitle:  "Release_5_1",
		EstimatedHours: ptr(120.5),
		SpentHours:     ptr(98.0),
		CreatedOn:      ptr(created),
		UpdatedOn:      ptr(updated),
		CustomFields:   []types.IssueCustomField{*IssueCustomField()},
	}
}

func News() *types.News {
	return &types.News{
		ID:          54,
		Project:     ref(1, "Redmine"),
		Author:      ref(3, "John Smith"),
		Title:       "Redmine 5.1 released",
		Summary:     "New features",
		Description: "Read the changelog.",
		CreatedOn:   ptr(created),
		Attachments: []types.Attachment{*Attachment()},
		Comments:    []types.NewsComment{*NewsComment()},
		Uploads:     []types.Upload{*Upload()},
	}
}

func NewsComment() *types.NewsComment {
	return &types.NewsComment{ID: 6, Author: ref(5, "Jane Doe"), Content: "Great news!"}
}

func WikiPage() *types.WikiPage {
	return &types.WikiPage{
		Title:       "Installation",
		ParentTitle: "Wiki",
		Text:        "h1. Installation\n\nRun the installer.",
		Version:     7,
		Author:      ref(3, "John Smith"),
		Comments:    "typo",
		CreatedOn:   ptr(created),
		UpdatedOn:   ptr(updated),
		Attachments: []types.Attachment{*Attachment()},
		Uploads:     []types.Upload{*Upload()},
	}
}

func File() *types.File {
	return &types.File{
		ID:          41,
		FileName:    "redmine-5.1.0.tar.gz",
		FileSize:    3145728,
		ContentType: "application/gzip",
		Description: "Release tarball",
		ContentURL:  "https://redmine.example.com/attachments/download/41/redmine-5.1.0.tar.gz",
		Author:      ref(3, "John Smith"),
		CreatedOn:   ptr(created),
		Version:     ref(12, "5.1.0"),
		Digest:      "5d41402abc4b2a76b9719d911017c592",
		Downloads:   128,
		Token:       "9.c0ffee",
	}
}

// --------------------------------------------------------------------------
// Users
// --------------------------------------------------------------------------

func User() *types.User {
	return &types.User{
		ID:                   5,
		Login:                "jdoe",
		Password:             "s3cret!",
		FirstName:            "Jane",
		LastName:             "Doe",
		Email:                "jane.doe@example.com",
		IsAdmin:              true,
		Status:               types.UserStatusActive,
		AuthenticationModeID: ptr(2),
		MailNotification:     "only_my_events",
		MustChangePassword:   true,
		GeneratePassword:     true,
		TwoFactorScheme:      "totp",
		APIKey:               "3f2a9e",
		AvatarURL:            "https://www.gravatar.com/avatar/1",
		CreatedOn:            ptr(created),
		UpdatedOn:            ptr(updated),
		LastLoginOn:          ptr(updated),
		PasswordChangedOn:    ptr(created),
		CustomFields:         []types.IssueCustomField{*IssueCustomField()},
		Memberships:          []types.Membership{*Membership()},
		Groups:               []types.UserGroup{{ID: 20, Name: "Developers"}},
	}
}

func MyAccount() *types.MyAccount {
	return &types.MyAccount{
		ID:           5,
		Login:        "jdoe",
		IsAdmin:      true,
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane.doe@example.com",
		CreatedOn:    ptr(created),
		LastLoginOn:  ptr(updated),
		APIKey:       "3f2a9e",
		CustomFields: []types.MyAccountCustomField{*MyAccountCustomField()},
	}
}

func MyAccountCustomField() *types.MyAccountCustomField {
	return &types.MyAccountCustomField{ID: 4, Name: "Phone", Value: "+49 30 1234"}
}

func Group() *types.Group {
	return &types.Group{
		ID:           20,
		Name:         "Developers",
		Users:        []types.GroupUser{{ID: 5, Name: "Jane Doe"}, {ID: 3, Name: "John Smith"}},
		CustomFields: []types.IssueCustomField{*IssueCustomField()},
		Memberships:  []types.Membership{*Membership()},
	}
}

func Role() *types.Role {
	return &types.Role{
		ID:                    3,
		Name:                  "Manager",
		IsAssignable:          ptr(false),
		IssuesVisibility:      "all",
		TimeEntriesVisibility: "own",
		UsersVisibility:       "members_of_visible_projects",
		Permissions:           []types.Permission{*Permission(), {Info: "edit_issues"}},
	}
}

func Permission() *types.Permission {
	return &types.Permission{Info: "add_issues"}
}

// --------------------------------------------------------------------------
// Trackers, statuses & enumerations
// --------------------------------------------------------------------------

func Tracker() *types.Tracker {
	return &types.Tracker{
		ID:                    1,
		Name:                  "Bug",
		DefaultStatus:         ref(1, "New"),
		Description:           "Something is broken",
		EnabledStandardFields: []types.TrackerCoreField{*TrackerCoreField(), {Name: "due_date"}},
	}
}

func TrackerCoreField() *types.TrackerCoreField {
	return &types.TrackerCoreField{Name: "assigned_to_id"}
}

func IssueStatus() *types.IssueStatus {
	return &types.IssueStatus{ID: 5, Name: "Closed", IsDefault: true, IsClosed: true, Description: "Work is done"}
}

func IssuePriority() *types.IssuePriority {
	return &types.IssuePriority{ID: 4, Name: "Normal", IsDefault: true, IsActive: true}
}

func TimeEntryActivity() *types.TimeEntryActivity {
	return &types.TimeEntryActivity{ID: 9, Name: "Development", IsActive: true}
}

func DocumentCategory() *types.DocumentCategory {
	return &types.DocumentCategory{ID: 1, Name: "User documentation", IsDefault: true}
}

func TimeEntry() *types.TimeEntry {
	return &types.TimeEntry{
		ID:           301,
		Project:      ref(1, "Redmine"),
		Issue:        types.NewReference(380),
		User:         ref(5, "Jane Doe"),
		Activity:     ref(9, "Development"),
		Hours:        1.25,
		Comments:     "Debugging",
		SpentOn:      ptr(start),
		CreatedOn:    ptr(created),
		UpdatedOn:    ptr(updated),
		CustomFields: []types.IssueCustomField{*IssueCustomField()},
	}
}

func CustomField() *types.CustomField {
	return &types.CustomField{
		ID:             2,
		Name:           "Platforms",
		Description:    "Affected platforms",
		CustomizedType: "issue",
		FieldFormat:    "list",
		Regexp:         "^[A-Z]",
		MinLength:      ptr(1),
		MaxLength:      ptr(64),
		IsRequired:     true,
		IsFilter:       true,
		Searchable:     true,
		Multiple:       true,
		DefaultValue:   "Linux",
		Visible:        true,
		Editable:       true,
		PossibleValues: []types.CustomFieldPossibleValue{*CustomFieldPossibleValue(), {Value: "Windows"}},
		Trackers:       []types.TrackerCustomField{{ID: 1, Name: "Bug"}},
		Roles:          []types.CustomFieldRole{{ID: 3, Name: "Manager"}},
	}
}

func CustomFieldPossibleValue() *types.CustomFieldPossibleValue {
	return &types.CustomFieldPossibleValue{Value: "Linux", Label: "Linux (all distributions)"}
}

// --------------------------------------------------------------------------
// Misc
// --------------------------------------------------------------------------

func Query() *types.Query {
	return &types.Query{ID: 8, Name: "Open bugs", IsPublic: true, ProjectID: ptr(1)}
}

func Search() *types.Search {
	return &types.Search{
		ID:          380,
		Title:       "Bug #380 (In Progress): Crash when saving",
		Type:        "issue",
		URL:         "https://redmine.example.com/issues/380",
		Description: "Steps to reproduce",
		DateTime:    ptr(updated),
	}
}

func Error() *types.Error {
	return &types.Error{Info: "Subject cannot be blank"}
}

func IdentifiableName() *types.IdentifiableName {
	return ref(1, "Redmine")
}

func Watcher() *types.Watcher {
	return &types.Watcher{ID: 91, Name: "Normal User"}
}

func GroupUser() *types.GroupUser {
	return &types.GroupUser{ID: 5, Name: "Jane Doe"}
}

func UserGroup() *types.UserGroup {
	return &types.UserGroup{ID: 20, Name: "Developers"}
}

func ProjectTracker() *types.ProjectTracker {
	return &types.ProjectTracker{ID: 1, Name: "Bug"}
}

func ProjectIssueCategory() *types.ProjectIssueCategory {
	return &types.ProjectIssueCategory{ID: 7, Name: "Backend"}
}

func ProjectEnabledModule() *types.ProjectEnabledModule {
	return &types.ProjectEnabledModule{ID: 21, Name: "issue_tracking"}
}

func ProjectTimeEntryActivity() *types.ProjectTimeEntryActivity {
	return &types.ProjectTimeEntryActivity{ID: 9, Name: "Development"}
}

func TrackerCustomField() *types.TrackerCustomField {
	return &types.TrackerCustomField{ID: 1, Name: "Bug"}
}

func CustomFieldRole() *types.CustomFieldRole {
	return &types.CustomFieldRole{ID: 3, Name: "Manager"}
}
