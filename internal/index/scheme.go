package index

var (
	bRecords   = []byte("records")    // category 0x00 slug -> Record
	bIdxTime   = []byte("idx_time")   // invTime + ref -> 1
	bIdxCat    = []byte("idx_cat")    // category -> sub-bucket of time keys
	bIdxTag    = []byte("idx_tag")    // lowercased tag -> sub-bucket of time keys
	bIdxSeries = []byte("idx_series") // hub slug -> sub-bucket of series keys

	// survive Rebuild
	bCache = []byte("cache") // fingerprint -> cached processing result
	bRuns  = []byte("runs")  // invTime + run id -> Run
)

var rebuiltBuckets = [][]byte{bRecords, bIdxTime, bIdxCat, bIdxTag, bIdxSeries}
