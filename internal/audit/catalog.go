package audit

import (
	"net/http"
	"path/filepath"
	"time"

	"stackaudit/internal/probe"
)

// Checkset is a named, ordered group of probes for one concern. Its index is
// its position in the declared catalog and fixes report ordering regardless
// of execution order.
type Checkset struct {
	Name        string
	Index       int
	Definitions []probe.CheckDefinition
}

// Catalog is the full declared sequence of checksets for one deployment.
type Catalog []Checkset

// Params carries the deployment coordinates the catalog is built against.
type Params struct {
	ProjectRoot  string
	FrontendURL  string
	BackendURL   string
	APIURL       string
	DatabasePath string
	RealtimeAddr string
	ProbeTimeout time.Duration
}

// requiredFiles are the files a correctly laid out deployment must carry.
var requiredFiles = []string{
	"package.json",
	"vite.config.ts",
	"backend/package.json",
	"backend/server.js",
	".env",
	"backend/.env",
}

// requiredTables are the tables the relational store must contain.
var requiredTables = []string{"devices", "device_files", "announcements", "users"}

// requiredDirs are the directories audited for presence and entry counts.
var requiredDirs = []string{
	"backend/uploads",
	"backend/config",
	"backend/routes",
	"src/components",
	"src/services",
}

type apiEndpoint struct {
	method      string
	path        string
	description string
}

var apiEndpoints = []apiEndpoint{
	{http.MethodGet, "/api/devices", "list devices"},
	{http.MethodGet, "/api/announcements", "list announcements"},
	{http.MethodPost, "/api/auth/login", "user login"},
	{http.MethodGet, "/api/system/status", "system status"},
}

type loginCase struct {
	name        string
	username    string
	password    string
	description string
}

var loginCases = []loginCase{
	{"valid-admin", "admin", "admin123", "valid admin login"},
	{"valid-user", "user", "user123", "valid user login"},
	{"invalid-credentials", "invalid", "invalid", "invalid login"},
	{"empty-credentials", "", "", "empty login"},
}

// BuildCatalog assembles the seven checksets of a full audit in their
// declared order. Definitions are fully resolved here so probes carry no
// hidden configuration state.
func BuildCatalog(p Params) Catalog {
	sets := []Checkset{
		systemStructure(p),
		serviceReachability(p),
		databaseIntegrity(p),
		apiSurface(p),
		loginScenarios(p),
		featureSmokeTests(p),
		filesystemLayout(p),
	}
	for i := range sets {
		sets[i].Index = i
	}
	return sets
}

func systemStructure(p Params) Checkset {
	defs := make([]probe.CheckDefinition, 0, len(requiredFiles))
	for _, rel := range requiredFiles {
		defs = append(defs, probe.CheckDefinition{
			Name:        rel,
			Description: "required file",
			Kind:        probe.KindFilesystem,
			Target:      probe.Target{Path: filepath.Join(p.ProjectRoot, rel)},
		})
	}
	return Checkset{Name: "system-structure", Definitions: defs}
}

func serviceReachability(p Params) Checkset {
	services := []struct{ name, url string }{
		{"frontend", p.FrontendURL},
		{"backend", p.BackendURL},
		{"api", p.APIURL},
	}
	defs := make([]probe.CheckDefinition, 0, len(services))
	for _, svc := range services {
		defs = append(defs, probe.CheckDefinition{
			Name:        svc.name,
			Description: "service base URL",
			Kind:        probe.KindHTTP,
			Target:      probe.Target{URL: svc.url},
			Expect:      probe.ExpectOK,
			Timeout:     p.ProbeTimeout,
		})
	}
	return Checkset{Name: "service-reachability", Definitions: defs}
}

func databaseIntegrity(p Params) Checkset {
	dbPath := filepath.Join(p.ProjectRoot, p.DatabasePath)
	defs := []probe.CheckDefinition{{
		Name:        "database-file",
		Description: "relational store file",
		Kind:        probe.KindFilesystem,
		Target:      probe.Target{Path: dbPath},
	}}
	for _, table := range requiredTables {
		defs = append(defs, probe.CheckDefinition{
			Name:        "table-" + table,
			Description: "required table",
			Kind:        probe.KindDatabase,
			Target:      probe.Target{DB: dbPath, Table: table},
			Timeout:     p.ProbeTimeout,
		})
	}
	return Checkset{Name: "database-integrity", Definitions: defs}
}

func apiSurface(p Params) Checkset {
	defs := make([]probe.CheckDefinition, 0, len(apiEndpoints))
	for _, ep := range apiEndpoints {
		def := probe.CheckDefinition{
			Name:        ep.method + " " + ep.path,
			Description: ep.description,
			Kind:        probe.KindHTTP,
			Target:      probe.Target{URL: p.BackendURL + ep.path},
			Method:      ep.method,
			Expect:      probe.ExpectReachable,
			Timeout:     p.ProbeTimeout,
		}
		if ep.method == http.MethodPost && ep.path == "/api/auth/login" {
			def.Body = map[string]string{"username": "test", "password": "test"}
		}
		defs = append(defs, def)
	}
	return Checkset{Name: "api-surface", Definitions: defs}
}

func loginScenarios(p Params) Checkset {
	defs := make([]probe.CheckDefinition, 0, len(loginCases))
	for _, tc := range loginCases {
		defs = append(defs, probe.CheckDefinition{
			Name:        tc.name,
			Description: tc.description,
			Kind:        probe.KindHTTP,
			Target:      probe.Target{URL: p.BackendURL + "/api/auth/login"},
			Method:      http.MethodPost,
			Body:        map[string]string{"username": tc.username, "password": tc.password},
			Expect:      probe.ExpectLogin,
			Timeout:     p.ProbeTimeout,
		})
	}
	return Checkset{Name: "login-scenarios", Definitions: defs}
}

func featureSmokeTests(p Params) Checkset {
	return Checkset{
		Name: "feature-smoke-tests",
		Definitions: []probe.CheckDefinition{
			{
				Name:        "device-listing",
				Description: "device management",
				Kind:        probe.KindHTTP,
				Target:      probe.Target{URL: p.APIURL + "/devices"},
				Expect:      probe.ExpectOK,
				CountItems:  true,
				Timeout:     p.ProbeTimeout,
			},
			{
				Name:        "upload-directory",
				Description: "file upload storage",
				Kind:        probe.KindFilesystem,
				Target:      probe.Target{Path: filepath.Join(p.ProjectRoot, "backend", "uploads")},
				WantDir:     true,
			},
			{
				Name:        "announcements-listing",
				Description: "announcements",
				Kind:        probe.KindHTTP,
				Target:      probe.Target{URL: p.APIURL + "/announcements"},
				Expect:      probe.ExpectOK,
				Timeout:     p.ProbeTimeout,
			},
			{
				Name:        "realtime-channel",
				Description: "realtime channel port",
				Kind:        probe.KindSocket,
				Target:      probe.Target{Addr: p.RealtimeAddr},
			},
		},
	}
}

func filesystemLayout(p Params) Checkset {
	defs := make([]probe.CheckDefinition, 0, len(requiredDirs))
	for _, rel := range requiredDirs {
		defs = append(defs, probe.CheckDefinition{
			Name:        rel,
			Description: "required directory",
			Kind:        probe.KindFilesystem,
			Target:      probe.Target{Path: filepath.Join(p.ProjectRoot, rel)},
			WantDir:     true,
			CountItems:  true,
		})
	}
	return Checkset{Name: "filesystem-layout", Definitions: defs}
}
