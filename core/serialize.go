package core

import (
	"errors"
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-maintained mus-format serializers for the persisted domain types.
// Field order is part of the storage format; append new fields at the end.

var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}
	// FoundRecordMUS serializes FoundRecord values.
	FoundRecordMUS = foundRecordMUS{}
	// LostRecordMUS serializes LostRecord values.
	LostRecordMUS = lostRecordMUS{}
	// ClaimRequestMUS serializes ClaimRequest values.
	ClaimRequestMUS = claimRequestMUS{}
	// ChatMessageMUS serializes ChatMessage values.
	ChatMessageMUS = chatMessageMUS{}
)

var errNegativeLength = errors.New("negative length")

// zeroTimeMark encodes time.Time{} so that zero-ness survives a round trip.
const zeroTimeMark = math.MinInt64

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS stores timestamps as microseconds since the Unix epoch.
type timeMUS struct{}

func (s timeMUS) Marshal(v time.Time, bs []byte) (n int) {
	if v.IsZero() {
		return varint.Int64.Marshal(zeroTimeMark, bs)
	}
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (s timeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	if micros == zeroTimeMark {
		return time.Time{}, n, nil
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (s timeMUS) Size(v time.Time) (size int) {
	if v.IsZero() {
		return varint.Int64.Size(zeroTimeMark)
	}
	return varint.Int64.Size(v.UnixMicro())
}

func (s timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

var timeSer = timeMUS{}

// vectorMUS stores embedding vectors as a length-prefixed run of float32s.
type vectorMUS struct{}

func (s vectorMUS) Marshal(v []float32, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return
}

func (s vectorMUS) Unmarshal(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		err = errNegativeLength
		return
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, length)
	for i := 0; i < length; i++ {
		var n1 int
		v[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s vectorMUS) Size(v []float32) (size int) {
	size = varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return
}

func (s vectorMUS) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		return n, errNegativeLength
	}
	for i := 0; i < length; i++ {
		var n1 int
		n1, err = raw.Float32.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

var vectorSer = vectorMUS{}

// reportMUS serializes the embedded Report base of both record kinds.
type reportMUS struct{}

func (s reportMUS) Marshal(v Report, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += timeSer.Marshal(v.Date, bs[n:])
	n += ord.String.Marshal(v.Contact, bs[n:])
	n += IDMUS.Marshal(v.ReporterId, bs[n:])
	n += ord.String.Marshal(v.ImageRef, bs[n:])
	n += vectorSer.Marshal(v.Vector, bs[n:])
	n += timeSer.Marshal(v.InsertedAt, bs[n:])
	n += timeSer.Marshal(v.UpdatedAt, bs[n:])
	return
}

func (s reportMUS) Unmarshal(bs []byte) (v Report, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Date, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Contact, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ReporterId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ImageRef, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = vectorSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s reportMUS) Size(v Report) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Location)
	size += timeSer.Size(v.Date)
	size += ord.String.Size(v.Contact)
	size += IDMUS.Size(v.ReporterId)
	size += ord.String.Size(v.ImageRef)
	size += vectorSer.Size(v.Vector)
	size += timeSer.Size(v.InsertedAt)
	size += timeSer.Size(v.UpdatedAt)
	return
}

var reportSer = reportMUS{}

type foundRecordMUS struct{}

func (s foundRecordMUS) Marshal(v FoundRecord, bs []byte) (n int) {
	n = reportSer.Marshal(v.Report, bs)
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += IDMUS.Marshal(v.ClaimedBy, bs[n:])
	return
}

func (s foundRecordMUS) Unmarshal(bs []byte) (v FoundRecord, n int, err error) {
	var n1 int
	v.Report, n, err = reportSer.Unmarshal(bs)
	if err != nil {
		return
	}
	var status int
	status, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status = FoundStatus(status)
	v.ClaimedBy, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s foundRecordMUS) Size(v FoundRecord) (size int) {
	size = reportSer.Size(v.Report)
	size += varint.Int.Size(int(v.Status))
	size += IDMUS.Size(v.ClaimedBy)
	return
}

type lostRecordMUS struct{}

func (s lostRecordMUS) Marshal(v LostRecord, bs []byte) (n int) {
	n = reportSer.Marshal(v.Report, bs)
	n += ord.Bool.Marshal(v.IsMatched, bs[n:])
	return
}

func (s lostRecordMUS) Unmarshal(bs []byte) (v LostRecord, n int, err error) {
	var n1 int
	v.Report, n, err = reportSer.Unmarshal(bs)
	if err != nil {
		return
	}
	v.IsMatched, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (s lostRecordMUS) Size(v LostRecord) (size int) {
	size = reportSer.Size(v.Report)
	size += ord.Bool.Size(v.IsMatched)
	return
}

type claimRequestMUS struct{}

func (s claimRequestMUS) Marshal(v ClaimRequest, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.FoundId, bs[n:])
	n += IDMUS.Marshal(v.ClaimantId, bs[n:])
	n += ord.String.Marshal(v.ProofDescription, bs[n:])
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += timeSer.Marshal(v.CreatedAt, bs[n:])
	n += timeSer.Marshal(v.DecidedAt, bs[n:])
	return
}

func (s claimRequestMUS) Unmarshal(bs []byte) (v ClaimRequest, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.FoundId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ClaimantId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProofDescription, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status int
	status, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status = ClaimStatus(status)
	v.CreatedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DecidedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s claimRequestMUS) Size(v ClaimRequest) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.FoundId)
	size += IDMUS.Size(v.ClaimantId)
	size += ord.String.Size(v.ProofDescription)
	size += varint.Int.Size(int(v.Status))
	size += timeSer.Size(v.CreatedAt)
	size += timeSer.Size(v.DecidedAt)
	return
}

type chatMessageMUS struct{}

func (s chatMessageMUS) Marshal(v ChatMessage, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.ClaimId, bs[n:])
	n += IDMUS.Marshal(v.SenderId, bs[n:])
	n += ord.String.Marshal(v.Body, bs[n:])
	n += timeSer.Marshal(v.Timestamp, bs[n:])
	return
}

func (s chatMessageMUS) Unmarshal(bs []byte) (v ChatMessage, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.ClaimId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SenderId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Body, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chatMessageMUS) Size(v ChatMessage) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.ClaimId)
	size += IDMUS.Size(v.SenderId)
	size += ord.String.Size(v.Body)
	size += timeSer.Size(v.Timestamp)
	return
}
