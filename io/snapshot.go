/*package io reads and writes the binary containers used by the turbvis
pipeline: particle snapshots, populated grids, and the gcfg configuration
files which describe runs over them.
*/
package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/appcell/turbvis/geom"
)

// All turbvis containers are little endian.
var end = binary.LittleEndian

// snapshotMagic identifies turbvis particle snapshots.
const snapshotMagic = int64(0x74757262)

// SnapshotFields lists the per-particle attributes stored in a snapshot, in
// the order their blocks appear in the file.
var SnapshotFields = []string{"x", "y", "z", "vx", "vy", "vz"}

// snapshotHeader is the on-disk layout of a snapshot's meta-information.
type snapshotHeader struct {
	Magic  int64
	Count  int64
	Fields int64
}

// Snapshot holds one field array per particle attribute, indexed by
// particle ordinal.
type Snapshot struct {
	Count  int64
	fields map[string][]float32
}

// NewSnapshot returns an empty Snapshot for count particles.
func NewSnapshot(count int64) *Snapshot {
	snap := &Snapshot{Count: count, fields: map[string][]float32{}}
	for _, name := range SnapshotFields {
		snap.fields[name] = make([]float32, count)
	}
	return snap
}

// Field returns the array of the named attribute.
func (snap *Snapshot) Field(name string) ([]float32, error) {
	vals, ok := snap.fields[name]
	if !ok {
		return nil, fmt.Errorf("Snapshot has no field '%s'.", name)
	}
	return vals, nil
}

// SetField replaces the array of the named attribute. The array length must
// match the snapshot's particle count.
func (snap *Snapshot) SetField(name string, vals []float32) error {
	if _, ok := snap.fields[name]; !ok {
		return fmt.Errorf("Snapshot has no field '%s'.", name)
	}
	if int64(len(vals)) != snap.Count {
		return fmt.Errorf(
			"Field '%s' has length %d, but the snapshot holds %d particles.",
			name, len(vals), snap.Count,
		)
	}
	snap.fields[name] = vals
	return nil
}

// Positions assembles the x, y, z field arrays into a vector sequence.
func (snap *Snapshot) Positions() []geom.Vec {
	xs, ys, zs := snap.fields["x"], snap.fields["y"], snap.fields["z"]
	vecs := make([]geom.Vec, snap.Count)
	for i := range vecs {
		vecs[i][0], vecs[i][1], vecs[i][2] = xs[i], ys[i], zs[i]
	}
	return vecs
}

// Values converts the named attribute into the float64 payload sequence
// consumed by the depositor.
func (snap *Snapshot) Values(name string) ([]float64, error) {
	vals, err := snap.Field(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out, nil
}

// WriteSnapshot writes snap to the given location.
func WriteSnapshot(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	hd := snapshotHeader{
		Magic:  snapshotMagic,
		Count:  snap.Count,
		Fields: int64(len(SnapshotFields)),
	}
	if err := binary.Write(w, end, &hd); err != nil {
		return err
	}

	for _, name := range SnapshotFields {
		if err := binary.Write(w, end, snap.fields[name]); err != nil {
			return err
		}
	}

	return w.Flush()
}

// ReadSnapshot reads the snapshot at the given location.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	hd := snapshotHeader{}
	if err := binary.Read(r, end, &hd); err != nil {
		return nil, fmt.Errorf("%s: could not read header: %v", path, err)
	}

	if hd.Magic != snapshotMagic {
		return nil, fmt.Errorf("%s is not a turbvis snapshot.", path)
	}
	if hd.Count < 0 {
		return nil, fmt.Errorf(
			"%s: invalid particle count %d.", path, hd.Count,
		)
	}
	if hd.Fields != int64(len(SnapshotFields)) {
		return nil, fmt.Errorf(
			"%s holds %d fields per particle, expected %d.",
			path, hd.Fields, len(SnapshotFields),
		)
	}

	snap := NewSnapshot(hd.Count)
	for _, name := range SnapshotFields {
		if err := binary.Read(r, end, snap.fields[name]); err != nil {
			return nil, fmt.Errorf(
				"%s: could not read field '%s': %v", path, name, err,
			)
		}
	}

	return snap, nil
}
