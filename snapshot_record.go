package traction

import (
	"errors"
	"fmt"
	"io"

	"github.com/gekko3d/traction/motion"
	"github.com/gekko3d/traction/suspension"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// quatRecord is a rotation as [w, x, y, z].
type quatRecord [4]float32

func toQuatRecord(q mgl32.Quat) quatRecord { return quatRecord{q.W, q.V[0], q.V[1], q.V[2]} }

func (q quatRecord) quat() mgl32.Quat {
	return mgl32.Quat{W: q[0], V: mgl32.Vec3{q[1], q[2], q[3]}}
}

type bodyRecord struct {
	Entity           EntityId       `msgpack:"id"`
	Profile          motion.Profile `msgpack:"profile"`
	Position         mgl32.Vec3     `msgpack:"pos"`
	Rotation         quatRecord     `msgpack:"rot"`
	Yaw              float32        `msgpack:"yaw"`
	Speed            float32        `msgpack:"speed"`
	VerticalVelocity float32        `msgpack:"vy"`
	Grounded         bool           `msgpack:"grounded"`
	Supported        bool           `msgpack:"supported"`
}

type wheelRecord struct {
	Owner         EntityId          `msgpack:"owner"`
	Corner        suspension.Corner `msgpack:"corner"`
	Compression   float32           `msgpack:"c"`
	Grounded      bool              `msgpack:"grounded"`
	ContactNormal mgl32.Vec3        `msgpack:"n"`
	Position      mgl32.Vec3        `msgpack:"pos"`
	Rotation      quatRecord        `msgpack:"rot"`
	Scale         mgl32.Vec3        `msgpack:"scale"`
}

type frameRecord struct {
	Step     uint64        `msgpack:"step"`
	Revision []byte        `msgpack:"rev"`
	Bodies   []bodyRecord  `msgpack:"bodies"`
	Wheels   []wheelRecord `msgpack:"wheels"`
}

func newFrameRecord(f *Frame) frameRecord {
	rec := frameRecord{
		Step:     f.Step,
		Revision: f.Revision[:],
		Bodies:   make([]bodyRecord, len(f.Bodies)),
		Wheels:   make([]wheelRecord, len(f.Wheels)),
	}
	for i, b := range f.Bodies {
		rec.Bodies[i] = bodyRecord{
			Entity:           b.Entity,
			Profile:          b.Profile,
			Position:         b.Position,
			Rotation:         toQuatRecord(b.Rotation),
			Yaw:              b.Yaw,
			Speed:            b.Speed,
			VerticalVelocity: b.VerticalVelocity,
			Grounded:         b.Grounded,
			Supported:        b.Supported,
		}
	}
	for i, w := range f.Wheels {
		rec.Wheels[i] = wheelRecord{
			Owner:         w.Owner,
			Corner:        w.Corner,
			Compression:   w.Compression,
			Grounded:      w.Grounded,
			ContactNormal: w.ContactNormal,
			Position:      w.World.Position,
			Rotation:      toQuatRecord(w.World.Rotation),
			Scale:         w.World.Scale,
		}
	}
	return rec
}

func (rec frameRecord) frame() (*Frame, error) {
	rev, err := uuid.FromBytes(rec.Revision)
	if err != nil {
		return nil, fmt.Errorf("frame %d: revision: %w", rec.Step, err)
	}
	f := &Frame{
		Step:     rec.Step,
		Revision: rev,
		Bodies:   make([]BodyState, len(rec.Bodies)),
		Wheels:   make([]WheelState, len(rec.Wheels)),
	}
	for i, b := range rec.Bodies {
		f.Bodies[i] = BodyState{
			Entity:           b.Entity,
			Profile:          b.Profile,
			Position:         b.Position,
			Rotation:         b.Rotation.quat(),
			Yaw:              b.Yaw,
			Speed:            b.Speed,
			VerticalVelocity: b.VerticalVelocity,
			Grounded:         b.Grounded,
			Supported:        b.Supported,
		}
	}
	for i, w := range rec.Wheels {
		f.Wheels[i] = WheelState{
			Owner:         w.Owner,
			Corner:        w.Corner,
			Compression:   w.Compression,
			Grounded:      w.Grounded,
			ContactNormal: w.ContactNormal,
			World:         Transform{Position: w.Position, Rotation: w.Rotation.quat(), Scale: w.Scale},
		}
	}
	return f, nil
}

// Recorder appends frames to a stream as consecutive msgpack values. The
// first write error sticks and every later Write returns it.
type Recorder struct {
	enc    *msgpack.Encoder
	frames int
	err    error
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: msgpack.NewEncoder(w)}
}

func (r *Recorder) Write(f *Frame) error {
	if r.err != nil {
		return r.err
	}
	if f == nil {
		return nil
	}
	if err := r.enc.Encode(newFrameRecord(f)); err != nil {
		r.err = err
		return err
	}
	r.frames++
	return nil
}

func (r *Recorder) Frames() int { return r.frames }
func (r *Recorder) Err() error  { return r.err }

// ReadRecording decodes every frame written by a Recorder.
func ReadRecording(rd io.Reader) ([]*Frame, error) {
	dec := msgpack.NewDecoder(rd)
	var frames []*Frame
	for {
		if _, err := dec.PeekCode(); errors.Is(err, io.EOF) {
			return frames, nil
		}
		var rec frameRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return frames, fmt.Errorf("recording frame %d: %w", len(frames), err)
		}
		f, err := rec.frame()
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}

// RecordModule writes every published frame to Recorder. Install it after
// SnapshotModule.
type RecordModule struct {
	Recorder *Recorder
}

func (mod RecordModule) Install(app *App, cmd *Commands) {
	if mod.Recorder == nil {
		return
	}
	cmd.AddResources(mod.Recorder)
	app.UseSystem(
		System(RecordSystem).InStage(Publish),
	)
}

func RecordSystem(cmd *Commands, rec *Recorder, snap *Snapshot) {
	if rec.Err() != nil {
		return
	}
	if err := rec.Write(snap.Latest()); err != nil {
		cmd.Logger().Errorf("recording stopped after %d frames: %v", rec.Frames(), err)
	}
}
