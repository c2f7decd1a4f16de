package dataset

import (
	"net"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/oschwald/maxminddb-golang"

	"leadscope/internal/model"
)

// ASNDB classifies IPs that miss the exact-match table by resolving their
// ASN through a GeoLite2-ASN MMDB and checking it against the hosting ASN
// list. Purely additive: without an MMDB on disk the feature is off and
// misses stay misses.
type ASNDB struct {
	reader *maxminddb.Reader
}

type asnRecord struct {
	AutonomousSystemNumber       uint   `maxminddb:"autonomous_system_number"`
	AutonomousSystemOrganization string `maxminddb:"autonomous_system_organization"`
}

// OpenASNDB tries to open the MMDB file. Returns nil if not available;
// callers treat a nil *ASNDB as "disabled".
func OpenASNDB(path string) *ASNDB {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug("MMDB file not found, ASN classification disabled", "path", path)
		return nil
	}

	reader, err := maxminddb.Open(path)
	if err != nil {
		log.Warn("failed to open MMDB, ASN classification disabled", "path", path, "err", err)
		return nil
	}

	log.Info("MMDB loaded", "path", path)
	return &ASNDB{reader: reader}
}

// Classify synthesizes a hosting IPRecord for IPs announced by a known
// hosting ASN. ok is false for unknown ASNs, unparseable input and a nil
// receiver.
func (db *ASNDB) Classify(ipStr string) (model.IPRecord, bool) {
	if db == nil {
		return model.IPRecord{}, false
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return model.IPRecord{}, false
	}

	var rec asnRecord
	if err := db.reader.Lookup(ip, &rec); err != nil {
		return model.IPRecord{}, false
	}

	org, ok := IsHostingASN(rec.AutonomousSystemNumber)
	if !ok {
		return model.IPRecord{}, false
	}

	name := rec.AutonomousSystemOrganization
	if name == "" {
		name = org
	}
	return model.IPRecord{
		IP:     ipStr,
		ASN:    "AS" + strconv.FormatUint(uint64(rec.AutonomousSystemNumber), 10),
		ASName: name,
		Type:   model.IPTypeHosting,
	}, true
}

// Loaded reports whether an MMDB is open.
func (db *ASNDB) Loaded() bool {
	return db != nil
}

// Close closes the MMDB reader.
func (db *ASNDB) Close() {
	if db != nil && db.reader != nil {
		db.reader.Close()
	}
}
