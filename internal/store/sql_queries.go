package store

const (
	userColumns = `user_id, username, password_hash, email, name, auth_mode, directory_dn, active, failed_login_attempts, last_login_at, created_at`

	createUser = `INSERT INTO users (username, password_hash, email, name, auth_mode, directory_dn, active)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + userColumns + `;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	// Counter arithmetic happens in SQL so concurrent failed logins for the
	// same account are serialized by the row lock and never lose an update.
	incrementFailedLogins = `UPDATE users
    SET failed_login_attempts = failed_login_attempts + 1
    WHERE user_id = $1;`

	registerLogin = `UPDATE users
    SET failed_login_attempts = 0, last_login_at = $2
    WHERE user_id = $1;`

	setUserActive = `UPDATE users
    SET active = $2
    WHERE user_id = $1;`

	findGroupsByUserID = `SELECT g.group_id, g.name, g.description, g.source, COALESCE(g.directory_dn, ''), g.legacy_permissions
    FROM groups g
    JOIN user_groups ug ON ug.group_id = g.group_id
    WHERE ug.user_id = $1
    ORDER BY g.group_id;`

	findPermissionsByGroupID = `SELECT p.name
    FROM permissions p
    JOIN group_permissions gp ON gp.permission_id = p.permission_id
    WHERE gp.group_id = $1
    ORDER BY p.name;`

	appendAccessLog = `INSERT INTO access_logs (user_id, action, ip, detail)
    VALUES ($1, $2, $3, $4);`

	directoryConfigColumns = `id, server_url, bind_dn, bind_password, search_base, user_filter, group_filter, login_attr, email_attr, name_attr, group_name_attr, group_member_attr, active, sync_interval_minutes, last_sync_at`

	getActiveDirectoryConfig = `SELECT ` + directoryConfigColumns + `
    FROM directory_configs
    WHERE active = TRUE
    ORDER BY id
    LIMIT 1;`

	insertDirectoryConfig = `INSERT INTO directory_configs (server_url, bind_dn, bind_password, search_base, user_filter, group_filter, login_attr, email_attr, name_attr, group_name_attr, group_member_attr, active, sync_interval_minutes)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    RETURNING ` + directoryConfigColumns + `;`

	deactivateOtherDirectoryConfigs = `UPDATE directory_configs
    SET active = FALSE
    WHERE id <> $1 AND active = TRUE;`

	getDirectoryConfigByID = `SELECT ` + directoryConfigColumns + `
    FROM directory_configs
    WHERE id = $1;`

	stampLastSync = `UPDATE directory_configs
    SET last_sync_at = $2
    WHERE id = $1;`
)

// Sync queries, executed only inside the ApplySync transaction.
const (
	syncFindUser = `SELECT user_id, email, name, auth_mode, COALESCE(directory_dn, '')
    FROM users
    WHERE username = $1;`

	syncInsertUser = `INSERT INTO users (username, password_hash, email, name, auth_mode, directory_dn, active)
    VALUES ($1, '', $2, $3, 'directory', $4, TRUE)
    RETURNING user_id;`

	// auth_mode is never touched: a local account keeps its local
	// credentials even when the directory reports a matching entry.
	syncUpdateUser = `UPDATE users
    SET email = $2, name = $3, directory_dn = $4
    WHERE user_id = $1;`

	syncFindGroup = `SELECT group_id, description, source, COALESCE(directory_dn, '')
    FROM groups
    WHERE name = $1;`

	syncInsertGroup = `INSERT INTO groups (name, description, source, directory_dn)
    VALUES ($1, $2, 'directory', $3)
    RETURNING group_id;`

	syncUpdateGroup = `UPDATE groups
    SET description = $2, directory_dn = $3
    WHERE group_id = $1;`

	syncSelectDirectoryMembers = `SELECT ug.user_id
    FROM user_groups ug
    JOIN users u ON u.user_id = ug.user_id
    WHERE ug.group_id = $1 AND u.auth_mode = 'directory';`

	syncInsertMembership = `INSERT INTO user_groups (user_id, group_id)
    VALUES ($1, $2)
    ON CONFLICT (user_id, group_id) DO NOTHING;`

	syncDeleteMembership = `DELETE FROM user_groups
    WHERE user_id = $1 AND group_id = $2;`

	syncSelectUserIDsByDN = `SELECT user_id, directory_dn
    FROM users
    WHERE auth_mode = 'directory' AND directory_dn IS NOT NULL AND directory_dn <> '';`
)
