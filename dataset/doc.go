// Package dataset stores named sample sets in a compact, checksummed binary container.
//
// A container holds up to 65535 sets. Each set is a pair of equal-length float64
// columns identified by a unique name. The layout is:
//
//	header   32 bytes, see Header
//	index    16 bytes per set: xxHash64 of the name and the point count
//	names    uvarint length + bytes per set, in index order
//	payload  x then y column of every set, compressed as a single block
//
// Encoding:
//
//	enc, err := dataset.NewEncoder(dataset.WithCompression(format.CompressionS2))
//	if err != nil {
//	    return err
//	}
//	_ = enc.Add("sensor-1", x1, y1)
//	_ = enc.Add("sensor-2", x2, y2)
//	data, err := enc.Finish()
//
// Decoding:
//
//	dec, err := dataset.NewDecoder(data)
//	if err != nil {
//	    return err
//	}
//	for set := range dec.All() {
//	    fmt.Println(set.Name, len(set.X))
//	}
package dataset
