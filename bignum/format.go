package bignum

import "strconv"

// Append appends the decimal text of x to buf and returns the extended buffer.
func (x BigInt) Append(buf []byte) []byte {
	if len(x.limbs) == 0 {
		return append(buf, '0')
	}
	if x.neg {
		buf = append(buf, '-')
	}
	top := len(x.limbs) - 1
	buf = strconv.AppendUint(buf, uint64(x.limbs[top]), 10)
	var chunk [LimbDigits]byte
	for i := top - 1; i >= 0; i-- {
		w := x.limbs[i]
		for j := LimbDigits - 1; j >= 0; j-- {
			chunk[j] = '0' + byte(w%10)
			w /= 10
		}
		buf = append(buf, chunk[:]...)
	}
	return buf
}

// String returns the decimal text of x: a '-' for negative values, the most
// significant limb without leading zeros and every other limb padded to nine
// digits. Zero is "0".
func (x BigInt) String() string {
	return string(x.Append(make([]byte, 0, len(x.limbs)*LimbDigits+1)))
}
