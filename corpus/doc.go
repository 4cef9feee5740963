// Copyright 2025 Quillstone Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package corpus reads source documents from gzip-compressed JSONL corpora.
//
// A corpus file holds one JSON object per line with the fields page_id,
// title and text. Scanner decodes the file lazily in file order:
//
//	sc, err := corpus.Open("corpus.json.gz")
//	if err != nil {
//	    return err
//	}
//	defer sc.Close()
//	for sc.Scan() {
//	    doc := sc.Document()
//	    ...
//	}
//	if err := sc.Err(); err != nil {
//	    return err
//	}
//
// Lines without a page_id field are skipped. A line that is not valid JSON
// stops the scan with an error; structural corruption aborts the run rather
// than silently dropping data.
//
// The package also provides sentence segmentation, which decomposes a
// document's text into the ordered sentence rows consumed by the chunker.
package corpus
