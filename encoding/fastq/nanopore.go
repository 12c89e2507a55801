package fastq

import "github.com/grailbio/fastqload/encoding/fastq/sink"

// AssembleNanopore handles the three-reader Nanopore case: template,
// complement, and (optionally separate) 2D readers are walked to
// completion. Matched template/complement pairs become a 2-read SEQUENCE
// spot; a matched 2D record becomes a 1-read CONSENSUS spot.
// Either reader argument may be nil if that pore read kind has no file.
func (a *Assembler) AssembleNanopore(template, complement, twoD Reader) error {
	seqOrder := newNameOrder()
	if err := a.nanoporeSequencePass(template, complement, seqOrder); err != nil {
		return err
	}
	return a.nanoporeConsensusPass(twoD, seqOrder)
}

// nanoporeSequencePass reconciles template/complement by name, emitting a
// real 2-read SEQUENCE spot on a match and a zero-length fake companion row
// for whichever side drains unmatched once both readers are exhausted
// (write a zero-length fake SEQUENCE companion so
// that SEQUENCE rows stay pairwise").
func (a *Assembler) nanoporeSequencePass(template, complement Reader, seqOrder *nameOrder) error {
	tMap, cMap := newOrphanMap(), newOrphanMap()
	readers := []Reader{}
	if template != nil {
		readers = append(readers, template)
	}
	if complement != nil {
		readers = append(readers, complement)
	}
	roleOf := map[Reader]PoreRead{}
	if template != nil {
		roleOf[template] = PoreTemplate
	}
	if complement != nil {
		roleOf[complement] = PoreComplement
	}

	for _, r := range readers {
		for r.Read() {
			if err := a.recordError(r.Err()); err != nil {
				return err
			}
			d, seq, qual := r.Defline(), r.Seq(), r.Qual()
			carrier := &orphanCarrier{defline: d, seq: seq, qual: qual}

			if roleOf[r] == PoreTemplate {
				if mate, ok := cMap.lookupAndDelete(d.Name); ok {
					if err := a.writeNanoSequence(d, seq, qual, mate.defline, mate.seq, mate.qual); err != nil {
						return err
					}
					seqOrder.add(d.Name)
					continue
				}
				tMap.insert(d.Name, carrier)
			} else {
				if mate, ok := tMap.lookupAndDelete(d.Name); ok {
					if err := a.writeNanoSequence(mate.defline, mate.seq, mate.qual, d, seq, qual); err != nil {
						return err
					}
					seqOrder.add(mate.defline.Name)
					continue
				}
				cMap.insert(d.Name, carrier)
			}
		}
		if err := a.recordError(r.Err()); err != nil {
			return err
		}
	}

	var drainErr error
	drain := func(present PoreRead) func(name string, c *orphanCarrier) {
		return func(name string, c *orphanCarrier) {
			if drainErr != nil {
				return
			}
			fake := Sequence{}
			var td, cd Defline
			var tSeq, cSeq Sequence
			var tQual, cQual Quality
			if present == PoreTemplate {
				td, tSeq, tQual = c.defline, c.seq, c.qual
				cd, cSeq, cQual = c.defline, fake, Quality{}
			} else {
				cd, cSeq, cQual = c.defline, c.seq, c.qual
				td, tSeq, tQual = c.defline, fake, Quality{}
			}
			drainErr = a.writeNanoSequence(td, tSeq, tQual, cd, cSeq, cQual)
			seqOrder.add(name)
		}
	}
	tMap.drain(drain(PoreTemplate))
	if drainErr != nil {
		return drainErr
	}
	cMap.drain(drain(PoreComplement))
	return drainErr
}

func (a *Assembler) writeNanoSequence(td Defline, tSeq Sequence, tQual Quality, cd Defline, cSeq Sequence, cQual Quality) error {
	spot := a.buildPairSpot(td, tSeq, tQual, cd, cSeq, cQual)
	spot.Platform = PlatformNanopore
	spot.Channel, spot.ReadNo = td.Channel, td.ReadNo
	if spot.Channel == 0 && spot.ReadNo == 0 {
		spot.Channel, spot.ReadNo = cd.Channel, cd.ReadNo
	}
	return a.write(spot)
}

// nanoporeConsensusPass emits one CONSENSUS row per 2D record: a real row
// when its name matches an emitted SEQUENCE spot (or stands alone, the
// 2D-only file case), and a zero-length fake row for every SEQUENCE name
// that never got a 2D match, so the SEQUENCE and CONSENSUS tables stay
// aligned by name.
func (a *Assembler) nanoporeConsensusPass(twoD Reader, seqOrder *nameOrder) error {
	seen := map[string]bool{}
	if twoD != nil {
		for twoD.Read() {
			if err := a.recordError(twoD.Err()); err != nil {
				return err
			}
			d, seq, qual := twoD.Defline(), twoD.Seq(), twoD.Qual()
			if err := a.writeConsensus(d, seq, qual); err != nil {
				return err
			}
			seen[d.Name] = true
		}
		if err := a.recordError(twoD.Err()); err != nil {
			return err
		}
	}
	for _, name := range seqOrder.names {
		if seen[name] {
			continue
		}
		if err := a.writeConsensus(Defline{Name: name, Platform: PlatformNanopore}, Sequence{}, Quality{}); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) writeConsensus(d Defline, seq Sequence, qual Quality) error {
	spot := Spot{
		Name:       a.emitName(d),
		SpotGroup:  a.spotGroup(d),
		Platform:   PlatformNanopore,
		Seq:        seq.Upper,
		ReadStart:  []int{0},
		ReadLength: []int{seq.Len()},
		ReadType:   []int{int(Biological)},
		ReadFilter: []bool{d.FilterFlag},
		Channel:    d.Channel,
		ReadNo:     d.ReadNo,
		Table:      sink.TableConsensus,
	}
	combineQuality(&spot, qual, Quality{})
	return a.write(spot)
}

// nameOrder records read names in first-seen order, giving the fake-row
// drain pass a reproducible iteration order without relying on map
// iteration, so emission order is stable across reruns.
type nameOrder struct {
	names []string
	seen  map[string]bool
}

func newNameOrder() *nameOrder { return &nameOrder{seen: map[string]bool{}} }

func (o *nameOrder) add(name string) {
	if o.seen[name] {
		return
	}
	o.seen[name] = true
	o.names = append(o.names, name)
}
