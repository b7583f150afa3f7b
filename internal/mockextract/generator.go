// Package mockextract fabricates receipt records for uploaded files. It
// stands in for a real OCR pipeline: no file content is ever read.
package mockextract

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"spendview/internal/core"
)

var vendors = []string{
	"Starbucks",
	"Chipotle",
	"Olive Garden",
	"Whole Foods",
	"Trader Joe's",
	"Safeway",
	"Uber",
	"Lyft",
	"Shell",
	"Netflix",
	"AMC Theatres",
	"Spotify",
	"Amazon",
	"Target",
	"Best Buy",
	"Comcast",
	"Verizon",
	"Delta Air Lines",
	"Marriott",
	"CVS Pharmacy",
	"Walgreens",
	"Office Depot",
	"Staples",
	"Corner Market",
}

// vendorCategories maps known vendors onto the category catalog. Vendors
// missing here fall back to core.Other.
var vendorCategories = map[string]core.Category{
	"Starbucks":       core.Dining,
	"Chipotle":        core.Dining,
	"Olive Garden":    core.Dining,
	"Whole Foods":     core.Groceries,
	"Trader Joe's":    core.Groceries,
	"Safeway":         core.Groceries,
	"Uber":            core.Transport,
	"Lyft":            core.Transport,
	"Shell":           core.Transport,
	"Netflix":         core.Entertainment,
	"AMC Theatres":    core.Entertainment,
	"Spotify":         core.Entertainment,
	"Amazon":          core.Shopping,
	"Target":          core.Shopping,
	"Best Buy":        core.Shopping,
	"Comcast":         core.Utilities,
	"Verizon":         core.Utilities,
	"Delta Air Lines": core.Travel,
	"Marriott":        core.Travel,
	"CVS Pharmacy":    core.Health,
	"Walgreens":       core.Health,
	"Office Depot":    core.Office,
	"Staples":         core.Office,
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// idLength keeps tokens short like the session-scoped identifiers they
// replace; collisions are a tolerated limitation at interactive scale.
const idLength = 8

// Generator fabricates receipts from a seedable random source and an
// injectable clock, so tests are deterministic.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New returns a generator drawing from the given seed. Seed 0 means
// time-based (non-deterministic) seeding. now may be nil for time.Now.
func New(seed int64, now func() time.Time) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// Generate fabricates one receipt record for the given (already validated)
// file. Vendor is uniform over the fixed list; amount uniform in [5,205]
// rounded to cents; age uniform in [0,365) days; confidence uniform in
// [0.70,1.00] to two decimals.
func (g *Generator) Generate(file core.FileMeta) core.Receipt {
	g.mu.Lock()
	defer g.mu.Unlock()

	vendor := vendors[g.rnd.Intn(len(vendors))]
	category, ok := vendorCategories[vendor]
	if !ok {
		category = core.Other
	}

	// [5.00, 205.00] in whole cents
	cents := int64(500) + g.rnd.Int63n(20001)

	ageDays := g.rnd.Intn(365)
	txDate := core.DateOf(g.now().AddDate(0, 0, -ageDays))

	confidence := math.Round((0.70+g.rnd.Float64()*0.30)*100) / 100

	return core.Receipt{
		ID:         g.token(),
		Vendor:     vendor,
		Date:       txDate,
		Amount:     core.Money{Cents: cents},
		Category:   category,
		FileName:   file.Name,
		FileType:   file.ContentType,
		Confidence: confidence,
	}
}

func (g *Generator) token() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[g.rnd.Intn(len(idAlphabet))]
	}
	return string(b)
}
