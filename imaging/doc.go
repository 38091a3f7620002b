// Package imaging forms complex sonar images by delay-and-sum
// beamforming over transmitter/receiver channels.
//
// Every channel is pulse compressed against its reference chirp. For each
// pixel the two-way travel distance Tx→pixel→Rx is converted to the nearest
// sample index and the compressed sample found there is added to the pixel.
// Channels are imaged independently by a bounded worker pool and the partial
// images are summed in channel order once all workers finish.
//
// Channel lists are built explicitly from TDMA data (one recording per
// transmitter/receiver pair), CDMA data (one recording per receiver with one
// orthogonal reference per transmitter) or a virtual array in which every
// pair is replaced by the monostatic element at its midpoint.
package imaging
