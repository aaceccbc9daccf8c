package common

// AppName is shown in prompts, notifications and exported file names.
const AppName = "AffiliatePro"

// AdminRole is the role claim required by admin tokens.
const AdminRole = "admin"
