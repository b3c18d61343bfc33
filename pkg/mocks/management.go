package mocks

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/marklogic-community/mlmanager/pkg/models"
)

// Management is an in-memory double of the MarkLogic Management and
// Admin APIs, good enough to exercise the client against: digest
// authentication, the default-list views, properties round trips with
// ETags, the operation POSTs, and the admin bootstrap endpoints.
type Management struct {
	Username string
	Password string
	Realm    string

	mu           sync.Mutex
	stores       map[string]*store
	certificates map[string][]models.Properties
	logs         map[string]string
	clusterProps models.Properties
	clusterRev   int
	initialized  bool
	nextID       int64
	nonce        string

	// LastOperation records the most recent operation POST, for
	// assertions on endpoints whose effect is otherwise invisible.
	LastOperation string
}

type store struct {
	plural   string
	listKey  string
	idKey    string
	nameKey  string
	extraRef bool
	items    map[string]models.Properties
	order    []string
	revs     map[string]int
}

// NewManagement builds a mock with the given admin credentials, one
// host and the Default group already in place.
func NewManagement(username, password string) *Management {
	m := &Management{
		Username: username,
		Password: password,
		Realm:    "public",
		stores: map[string]*store{
			"certificate-templates": newStore("certificate-templates", "certificate-templates-default-list", "template-id", "template-name", false),
			"databases":             newStore("databases", "database-default-list", "database-id", "database-name", false),
			"forests":               newStore("forests", "forest-default-list", "forest-id", "forest-name", false),
			"servers":               newStore("servers", "server-default-list", "server-id", "server-name", true),
			"hosts":                 newStore("hosts", "host-default-list", "host-id", "host-name", false),
			"users":                 newStore("users", "user-default-list", "user-id", "user-name", false),
			"roles":                 newStore("roles", "role-default-list", "role-id", "role-name", false),
			"groups":                newStore("groups", "group-default-list", "group-id", "group-name", false),
		},
		certificates: map[string][]models.Properties{},
		logs: map[string]string{
			"ErrorLog.txt": "2026-08-22 00:00:00.000 Info: Starting MarkLogic Server\n",
		},
		clusterProps: models.Properties{
			"cluster-name": "mock-cluster",
			"ssl-fips":     true,
		},
		nextID: 7000,
		nonce:  fmt.Sprintf("%x", md5.Sum([]byte(time.Now().String()))),
	}
	m.seed("hosts", models.Properties{"host-name": "localhost", "group": "Default"})
	m.seed("groups", models.Properties{"group-name": "Default"})
	return m
}

func newStore(plural, listKey, idKey, nameKey string, extraRef bool) *store {
	return &store{
		plural:   plural,
		listKey:  listKey,
		idKey:    idKey,
		nameKey:  nameKey,
		extraRef: extraRef,
		items:    map[string]models.Properties{},
		revs:     map[string]int{},
	}
}

func (s *store) lookup(ref string) (string, models.Properties) {
	if props, ok := s.items[ref]; ok {
		return ref, props
	}
	for id, props := range s.items {
		if props.String(s.nameKey) == ref {
			return id, props
		}
	}
	return "", nil
}

func (m *Management) seed(plural string, props models.Properties) string {
	s := m.stores[plural]
	m.nextID++
	id := strconv.FormatInt(m.nextID, 10)
	props.Set(s.idKey, id)
	s.items[id] = props
	s.order = append(s.order, id)
	s.revs[id] = 1
	return id
}

// Seed inserts a resource directly, bypassing the API.
func (m *Management) Seed(plural string, props models.Properties) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seed(plural, props)
}

// Resource returns a stored resource by name or id, or nil.
func (m *Management) Resource(plural, ref string) models.Properties {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, props := m.stores[plural].lookup(ref)
	return props
}

// SeedLog installs a log file for the logs endpoint to serve.
func (m *Management) SeedLog(filename, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[filename] = content
}

// Handler returns the mock API behind digest authentication.
func (m *Management) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/manage/v2", m.clusterView).Methods("GET")
	r.HandleFunc("/manage/v2", m.clusterOperation).Methods("POST")
	r.HandleFunc("/manage/v2/properties", m.clusterProperties).Methods("GET")
	r.HandleFunc("/manage/v2/properties", m.putClusterProperties).Methods("PUT")
	r.HandleFunc("/manage/v2/logs", m.getLog).Methods("GET")

	for _, s := range m.stores {
		s := s
		r.HandleFunc("/manage/v2/"+s.plural, m.list(s)).Methods("GET")
		r.HandleFunc("/manage/v2/"+s.plural, m.create(s)).Methods("POST")
		r.HandleFunc("/manage/v2/"+s.plural+"/{ref}", m.operate(s)).Methods("POST")
		r.HandleFunc("/manage/v2/"+s.plural+"/{ref}", m.remove(s)).Methods("DELETE")
		r.HandleFunc("/manage/v2/"+s.plural+"/{ref}/properties", m.getProperties(s)).Methods("GET")
		r.HandleFunc("/manage/v2/"+s.plural+"/{ref}/properties", m.putProperties(s)).Methods("PUT")
	}

	r.HandleFunc("/admin/v1/init", m.adminInit).Methods("POST")
	r.HandleFunc("/admin/v1/instance-admin", m.instanceAdmin).Methods("POST")
	r.HandleFunc("/admin/v1/timestamp", m.timestamp).Methods("GET")

	return m.requireDigest(r)
}

// ============================================================
// digest authentication

func (m *Management) requireDigest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The bootstrap endpoints answer before any admin user
		// exists, so they take no credentials.
		if r.URL.Path == "/admin/v1/init" || r.URL.Path == "/admin/v1/instance-admin" {
			next.ServeHTTP(w, r)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Digest ") || !m.verifyDigest(strings.TrimPrefix(auth, "Digest "), r.Method) {
			w.Header().Set("WWW-Authenticate",
				fmt.Sprintf(`Digest realm=%q, qop="auth", algorithm=MD5, nonce=%q, opaque=%q`,
					m.Realm, m.nonce, m.nonce))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Management) verifyDigest(fields, method string) bool {
	m.mu.Lock()
	username, password, nonce := m.Username, m.Password, m.nonce
	m.mu.Unlock()

	params := parseDigest(fields)
	if params["username"] != username || params["nonce"] != nonce {
		return false
	}
	ha1 := md5hex(params["username"] + ":" + m.Realm + ":" + password)
	ha2 := md5hex(method + ":" + params["uri"])
	expected := md5hex(strings.Join([]string{
		ha1, params["nonce"], params["nc"], params["cnonce"], params["qop"], ha2,
	}, ":"))
	return params["response"] == expected
}

func parseDigest(fields string) map[string]string {
	params := map[string]string{}
	for _, field := range strings.Split(fields, ",") {
		parts := strings.SplitN(strings.TrimSpace(field), "=", 2)
		if len(parts) != 2 {
			continue
		}
		params[parts[0]] = strings.Trim(parts[1], `"`)
	}
	return params
}

func md5hex(data string) string {
	sum := md5.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}

// ============================================================
// resource stores

func (m *Management) list(s *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		items := make([]models.Properties, 0, len(s.order))
		for _, id := range s.order {
			props := s.items[id]
			entry := models.Properties{
				"idref":   id,
				"nameref": props.String(s.nameKey),
			}
			if s.extraRef {
				entry.Set("kindref", props.String("server-type"))
				entry.Set("groupnameref", props.String("group-name"))
			}
			items = append(items, entry)
		}
		writeJSON(w, http.StatusOK, models.Properties{
			s.listKey: models.Properties{
				"list-items": models.Properties{
					"list-count": len(items),
					"list-item":  items,
				},
			},
		})
	}
}

func (m *Management) create(s *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		props, err := readProps(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		name := props.String(s.nameKey)
		if name == "" {
			writeError(w, http.StatusBadRequest, "missing "+s.nameKey)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, existing := s.lookup(name); existing != nil {
			writeError(w, http.StatusBadRequest, s.nameKey+" already in use")
			return
		}
		if s.plural == "certificate-templates" {
			props.Set("template-version", 1)
		}
		id := m.seed(s.plural, props)
		w.Header().Set("Location", "/manage/v2/"+s.plural+"/"+id)
		w.WriteHeader(http.StatusCreated)
	}
}

func (m *Management) getProperties(s *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		id, props := s.lookup(mux.Vars(r)["ref"])
		if props == nil {
			writeError(w, http.StatusNotFound, "no such "+s.nameKey)
			return
		}
		w.Header().Set("ETag", fmt.Sprintf("%q", fmt.Sprintf("%s-%d", id, s.revs[id])))
		writeJSON(w, http.StatusOK, props)
	}
}

func (m *Management) putProperties(s *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readProps(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		id, props := s.lookup(mux.Vars(r)["ref"])
		if props == nil {
			writeError(w, http.StatusNotFound, "no such "+s.nameKey)
			return
		}
		// The real server owns identity and version properties and
		// rejects payloads that try to write them.
		if s.plural == "certificate-templates" {
			if payload.Has("template-id") || payload.Has("template-version") {
				writeError(w, http.StatusBadRequest, "cannot update template-id or template-version")
				return
			}
		} else if payload.Has(s.idKey) && payload.Format(s.idKey) != id {
			writeError(w, http.StatusBadRequest, "cannot change "+s.idKey)
			return
		}
		for key, value := range payload {
			props.Set(key, value)
		}
		if s.plural == "certificate-templates" {
			props.Set("template-version", props.Int("template-version")+1)
		}
		s.revs[id]++
		w.WriteHeader(http.StatusNoContent)
	}
}

func (m *Management) remove(s *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		id, props := s.lookup(mux.Vars(r)["ref"])
		if props == nil {
			writeError(w, http.StatusNotFound, "no such "+s.nameKey)
			return
		}
		delete(s.items, id)
		delete(s.revs, id)
		for i, ordered := range s.order {
			if ordered == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (m *Management) operate(s *store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readProps(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		id, props := s.lookup(mux.Vars(r)["ref"])
		if props == nil {
			writeError(w, http.StatusNotFound, "no such "+s.nameKey)
			return
		}
		operation := payload.String("operation")
		m.LastOperation = operation

		switch s.plural + "/" + operation {
		case "certificate-templates/generate-template-certificate-authority":
			writeJSON(w, http.StatusCreated, models.Properties{})
		case "certificate-templates/generate-temporary-certificate":
			cert := models.Properties{
				"template-id": id,
				"common-name": payload.String("common-name"),
				"valid-for":   payload.Get("valid-for"),
				"temporary":   true,
			}
			if payload.Has("dns-name") {
				cert.Set("dns-name", payload.Get("dns-name"))
			}
			if payload.Has("ip-addr") {
				cert.Set("ip-addr", payload.Get("ip-addr"))
			}
			m.certificates[id] = append(m.certificates[id], cert)
			writeJSON(w, http.StatusCreated, models.Properties{})
		case "certificate-templates/get-certificate":
			for _, cert := range m.certificates[id] {
				if cert.String("common-name") == payload.String("common-name") {
					writeJSON(w, http.StatusOK, cert)
					return
				}
			}
			writeError(w, http.StatusNotFound, "no certificate for "+payload.String("common-name"))
		case "certificate-templates/get-certificates-for-template":
			writeJSON(w, http.StatusOK, models.Properties{
				"certificates": m.certificates[id],
			})
		case "databases/clear-database":
			writeJSON(w, http.StatusOK, models.Properties{})
		case "hosts/shutdown-host", "hosts/restart-host":
			w.WriteHeader(http.StatusAccepted)
		default:
			writeError(w, http.StatusBadRequest, "unsupported operation "+operation)
		}
	}
}

// ============================================================
// cluster and admin endpoints

func (m *Management) clusterView(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("view") != "status" {
		writeJSON(w, http.StatusOK, models.Properties{})
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	hosts := m.stores["hosts"]
	writeJSON(w, http.StatusOK, models.Properties{
		"local-cluster-status": models.Properties{
			"name":        m.clusterProps.String("cluster-name"),
			"version":     "10.0-9",
			"hosts-count": len(hosts.order),
		},
	})
}

func (m *Management) clusterOperation(w http.ResponseWriter, r *http.Request) {
	payload, err := readProps(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	operation := payload.String("operation")
	m.LastOperation = operation
	if operation != "restart-local-cluster" {
		writeError(w, http.StatusBadRequest, "unsupported operation "+operation)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (m *Management) clusterProperties(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.Header().Set("ETag", fmt.Sprintf("%q", fmt.Sprintf("cluster-%d", m.clusterRev)))
	writeJSON(w, http.StatusOK, m.clusterProps)
}

func (m *Management) putClusterProperties(w http.ResponseWriter, r *http.Request) {
	payload, err := readProps(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range payload {
		m.clusterProps.Set(key, value)
	}
	m.clusterRev++
	w.WriteHeader(http.StatusNoContent)
}

func (m *Management) getLog(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.logs[r.URL.Query().Get("filename")]
	if !ok {
		writeError(w, http.StatusNotFound, "no such log file")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, content)
}

func (m *Management) adminInit(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	m.initialized = true
	writeJSON(w, http.StatusAccepted, models.Properties{
		"last-startup": time.Now().UTC().Format(time.RFC3339),
	})
}

func (m *Management) instanceAdmin(w http.ResponseWriter, r *http.Request) {
	payload, err := readProps(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if username := payload.String("admin-username"); username != "" {
		m.Username = username
		m.Password = payload.String("admin-password")
	}
	if realm := payload.String("realm"); realm != "" {
		m.Realm = realm
	}
	writeJSON(w, http.StatusAccepted, models.Properties{
		"last-startup": time.Now().UTC().Format(time.RFC3339),
	})
}

func (m *Management) timestamp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, time.Now().UTC().Format(time.RFC3339))
}

// ============================================================

func readProps(r *http.Request) (models.Properties, error) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return models.Properties{}, nil
	}
	return models.Decode(body)
}

func writeJSON(w http.ResponseWriter, status int, doc interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(doc)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Properties{
		"errorResponse": models.Properties{
			"status-code": status,
			"message":     message,
		},
	})
}
