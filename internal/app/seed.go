package app

import (
	"fmt"
	"path"

	"parseai/internal/domain"
	memstorage "parseai/internal/storage/memory"
)

// minimalPDF is a one-page empty PDF used as seeded sample content.
const minimalPDF = "%PDF-1.4\n1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
	"trailer<</Root 1 0 R>>\n%%EOF\n"

var seedSamples = map[domain.SampleCategory][]string{
	domain.SampleCategoryMedical:     {"discharge-summary.pdf", "lab-report.pdf"},
	domain.SampleCategoryXRay:        {"chest-pa.pdf"},
	domain.SampleCategoryFinancial:   {"hospital-bill.pdf"},
	domain.SampleCategoryLegal:       {"consent-form.pdf"},
	domain.SampleCategoryEducational: {"transcript.pdf"},
	domain.SampleCategoryGeneral:     {"letter.pdf"},
}

// SeedSamples fills an in-memory store with placeholder sample and customer
// documents so every listing endpoint has content.
func SeedSamples(store *memstorage.Store, bucket, customerPrefix string) {
	for category, names := range seedSamples {
		dir := domain.SampleCategoryPrefixes[category]
		for _, name := range names {
			store.Put(bucket, path.Join(dir, name), []byte(minimalPDF))
		}
	}
	for i, c := range []string{"CUST0010", "CUST0011", "CUST0012"} {
		key := path.Join(customerPrefix, c, fmt.Sprintf("claim-%d.pdf", i+1))
		store.Put(bucket, key, []byte(minimalPDF))
	}
}
